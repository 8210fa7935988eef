package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/welldanyogia/webrana-msgview/internal/config"
	"github.com/welldanyogia/webrana-msgview/internal/contact"
	"github.com/welldanyogia/webrana-msgview/internal/database"
	"github.com/welldanyogia/webrana-msgview/internal/i18n"
	"github.com/welldanyogia/webrana-msgview/internal/logger"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/metrics"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
	"github.com/welldanyogia/webrana-msgview/internal/services"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
	"github.com/welldanyogia/webrana-msgview/internal/storage"
	"github.com/welldanyogia/webrana-msgview/internal/timefmt"
	"gorm.io/gorm"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	rdb      *redis.Client
	metrics  *metrics.Metrics
	views    services.ViewService
	imports  services.ImportService
	contacts repository.ContactRepository
	resolver *contact.Resolver
}

func newApp(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.LoadWithValidation()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	cfg.LogConfig(log)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{AppEnv: cfg.AppEnv})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	parts, err := storage.NewLocalStorage(cfg.PartStoragePath)
	if err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to initialize part storage: %w", err)
	}

	a := &app{cfg: cfg, logger: log, db: db}

	// A nil *RedisCache must not reach the resolver as a non-nil interface.
	var cache contact.Cache
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unavailable, contact cache will miss", slog.String("error", err.Error()))
		}
		cancel()
		cache = contact.NewRedisCache(a.rdb, cfg.RedisTTL)
	}

	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		a.close()
		return nil, err
	}
	log.Info("localization loaded",
		slog.String("requested", cfg.Locale),
		slog.String("language", catalog.Language().String()),
	)

	persister := pdu.NewPersister(db, parts)
	conversations := repository.NewConversationRepository(db)
	a.contacts = repository.NewContactRepository(db)
	a.resolver = contact.NewResolver(a.contacts, cache, cfg.DefaultRegion, log)

	builder := message.NewBuilder(message.Deps{
		PDUs:     persister,
		Slides:   slideshow.NewDecoder(log),
		Contacts: a.resolver,
		Strings:  catalog,
		Clock:    timefmt.New(time.Local),
	})

	if reg != nil {
		a.metrics = metrics.New(reg)
	}
	a.views = services.NewViewService(conversations, builder, a.metrics, log)
	a.imports = services.NewImportService(persister, conversations, log)
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close database", slog.String("error", err.Error()))
	}
}
