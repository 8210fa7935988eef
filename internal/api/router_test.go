package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welldanyogia/webrana-msgview/internal/contact"
	"github.com/welldanyogia/webrana-msgview/internal/database"
	"github.com/welldanyogia/webrana-msgview/internal/i18n"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/metrics"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
	"github.com/welldanyogia/webrana-msgview/internal/services"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
	"github.com/welldanyogia/webrana-msgview/internal/timefmt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the real stack over an in-memory database.
func newTestRouter(t *testing.T, apiKey string) (http.Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	catalog, err := i18n.New("en")
	require.NoError(t, err)
	builder := message.NewBuilder(message.Deps{
		PDUs:     pdu.NewPersister(db, nil),
		Slides:   slideshow.NewDecoder(nil),
		Contacts: contact.NewResolver(repository.NewContactRepository(db), nil, "US", nil),
		Strings:  catalog,
		Clock:    timefmt.New(nil),
	})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	views := services.NewViewService(repository.NewConversationRepository(db), builder, m, nil)

	return NewRouter(&RouterConfig{
		DB:       db,
		Views:    views,
		Metrics:  m,
		Gatherer: reg,
		APIKey:   apiKey,
	}), db
}

func get(h http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthAndReady(t *testing.T) {
	h, _ := newTestRouter(t, "")

	assert.Equal(t, http.StatusOK, get(h, "/health", "").Code)
	assert.Equal(t, http.StatusOK, get(h, "/ready", "").Code)
}

func TestRouter_MessageView(t *testing.T) {
	// Arrange
	h, db := newTestRouter(t, "")
	repo := repository.NewConversationRepository(db)
	require.NoError(t, repo.CreateSms(context.Background(), &models.Sms{
		ThreadID: 1, Address: "+16502530000", Body: "Hello Router", Date: 1000, Type: 1, Status: -1,
	}))

	// Act
	rec := get(h, "/api/messages/sms/1", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"body":"Hello Router"`)
	assert.Contains(t, rec.Body.String(), `"contact":"(650) 253-0000"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_ErrorStatuses(t *testing.T) {
	h, _ := newTestRouter(t, "")

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/messages/xmpp/1", "").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/api/messages/sms/99", "").Code)
}

func TestRouter_ThreadListing(t *testing.T) {
	h, db := newTestRouter(t, "")
	repo := repository.NewConversationRepository(db)
	for i, body := range []string{"first", "second"} {
		require.NoError(t, repo.CreateSms(context.Background(), &models.Sms{
			ThreadID: 5, Address: "+16502530000", Body: body, Date: int64(1000 * (i + 1)), Type: 2, Status: -1,
		}))
	}

	rec := get(h, "/api/threads/5/messages", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `"body":"first".*"body":"second"`, rec.Body.String())
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h, _ := newTestRouter(t, "secret")

	assert.Equal(t, http.StatusUnauthorized, get(h, "/api/threads/1/messages", "").Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/threads/1/messages", "secret").Code)
	assert.Equal(t, http.StatusOK, get(h, "/health", "").Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t, "")
	get(h, "/api/messages/xmpp/1", "")

	rec := get(h, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `msgview_http_requests_total{method="GET",path="/api/messages/:kind/:id",status_code="400"} 1`)
}
