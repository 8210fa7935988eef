// Package contact resolves message addresses to display names.
package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/welldanyogia/webrana-msgview/internal/repository"
)

// Resolver looks up display names through an in-process map, an optional
// shared cache and finally the contact repository. It is safe for
// concurrent use.
type Resolver struct {
	repo   repository.ContactRepository
	cache  Cache
	region string
	logger *slog.Logger

	mu    sync.RWMutex
	names map[string]string
}

// NewResolver creates a Resolver. cache may be nil. region is the ISO 3166
// code used to format numbers without a country prefix.
func NewResolver(repo repository.ContactRepository, cache Cache, region string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		repo:   repo,
		cache:  cache,
		region: region,
		logger: logger,
		names:  make(map[string]string),
	}
}

// Resolve returns the display name for address: the contact's name when one
// is known, otherwise the formatted address. With createIfAbsent an unnamed
// contact row is created for unknown addresses. Store failures degrade to
// the formatted address and are logged, never returned.
func (r *Resolver) Resolve(ctx context.Context, address string, createIfAbsent bool) string {
	if address == "" {
		return ""
	}

	r.mu.RLock()
	name, ok := r.names[address]
	r.mu.RUnlock()
	if ok {
		return name
	}

	if r.cache != nil {
		name, ok, err := r.cache.Get(ctx, address)
		if err != nil {
			r.logger.Warn("contact cache lookup failed", "address", address, "error", err)
		} else if ok {
			r.remember(address, name)
			return name
		}
	}

	name, err := r.lookup(ctx, address, createIfAbsent)
	if err != nil {
		r.logger.Warn("contact lookup failed", "address", address, "error", err)
		return FormatNumber(address, r.region)
	}

	r.remember(address, name)
	if r.cache != nil {
		if err := r.cache.Set(ctx, address, name); err != nil {
			r.logger.Warn("contact cache store failed", "address", address, "error", err)
		}
	}
	return name
}

func (r *Resolver) lookup(ctx context.Context, address string, createIfAbsent bool) (string, error) {
	if createIfAbsent {
		c, created, err := r.repo.GetOrCreate(ctx, address)
		if err != nil {
			return "", err
		}
		if created {
			r.logger.Debug("contact created", "address", address)
		}
		return r.displayName(address, c.Name), nil
	}

	c, err := r.repo.GetByAddress(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		return r.displayName(address, ""), nil
	}
	if err != nil {
		return "", err
	}
	return r.displayName(address, c.Name), nil
}

func (r *Resolver) displayName(address, name string) string {
	if name != "" {
		return name
	}
	return FormatNumber(address, r.region)
}

func (r *Resolver) remember(address, name string) {
	r.mu.Lock()
	r.names[address] = name
	r.mu.Unlock()
}

// Rename stores a new name for address and drops every cached copy.
func (r *Resolver) Rename(ctx context.Context, address, name string) error {
	if err := r.repo.SetName(ctx, address, name); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.names, address)
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Delete(ctx, address); err != nil {
			r.logger.Warn("contact cache invalidation failed", "address", address, "error", err)
		}
	}
	return nil
}
