//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/welldanyogia/webrana-msgview/internal/contact"
	"github.com/welldanyogia/webrana-msgview/internal/database"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/i18n"
	"github.com/welldanyogia/webrana-msgview/internal/message"
	"github.com/welldanyogia/webrana-msgview/internal/metrics"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/pdu"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
	"github.com/welldanyogia/webrana-msgview/internal/services"
	"github.com/welldanyogia/webrana-msgview/internal/slideshow"
	"github.com/welldanyogia/webrana-msgview/internal/storage"
	"github.com/welldanyogia/webrana-msgview/internal/timefmt"
	"gorm.io/gorm"
)

// ViewIntegrationTestSuite builds views from a real PostgreSQL store
type ViewIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	db        *gorm.DB
	redis     *miniredis.Miniredis
	persister *pdu.Persister
	contacts  repository.ContactRepository
	views     services.ViewService
	imports   services.ImportService
}

// SetupSuite starts PostgreSQL container and wires the view stack
func (s *ViewIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "msgview_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(s.T(), err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/msgview_test?sslmode=disable", host, port.Port())
	db, err := database.Connect(dsn, database.Options{AppEnv: "test"})
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.Migrate(db))
	s.db = db

	parts, err := storage.NewLocalStorage(s.T().TempDir())
	require.NoError(s.T(), err)

	s.redis = miniredis.RunT(s.T())
	rdb := redis.NewClient(&redis.Options{Addr: s.redis.Addr()})

	catalog, err := i18n.New("en")
	require.NoError(s.T(), err)

	s.persister = pdu.NewPersister(db, parts)
	s.contacts = repository.NewContactRepository(db)
	conversations := repository.NewConversationRepository(db)
	builder := message.NewBuilder(message.Deps{
		PDUs:     s.persister,
		Slides:   slideshow.NewDecoder(nil),
		Contacts: contact.NewResolver(s.contacts, contact.NewRedisCache(rdb, time.Hour), "US", nil),
		Strings:  catalog,
		Clock:    timefmt.New(time.UTC),
	})
	s.views = services.NewViewService(conversations, builder, metrics.New(prometheus.NewRegistry()), nil)
	s.imports = services.NewImportService(s.persister, conversations, nil)
}

// TearDownSuite stops the PostgreSQL container
func (s *ViewIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		database.Close(s.db)
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

// SetupTest cleans up data before each test
func (s *ViewIntegrationTestSuite) SetupTest() {
	s.db.Exec("TRUNCATE TABLE part, addr, pdu, sms, contacts RESTART IDENTITY CASCADE")
	s.redis.FlushAll()
}

// TestViewIntegrationTestSuite runs the test suite
func TestViewIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(ViewIntegrationTestSuite))
}

// ==================== SMS Tests ====================

func (s *ViewIntegrationTestSuite) TestSms_IncomingResolvesNamedContact() {
	ctx := context.Background()
	require.NoError(s.T(), s.imports.ImportSms(ctx, &models.Sms{
		ThreadID: 1, Address: "+15551234567", Body: "hello", Date: 1700000000000, Type: message.SmsBoxInbox, Status: -1,
	}))
	_, _, err := s.contacts.GetOrCreate(ctx, "+15551234567")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.contacts.SetName(ctx, "+15551234567", "Alice"))

	view, err := s.views.Get(ctx, "sms", 1, "HELLO")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "content://sms/1", view.URI())
	assert.Equal(s.T(), "Alice", view.Contact())
	assert.Equal(s.T(), "hello", view.Body())
	assert.Equal(s.T(), "hello", view.Highlight())
	assert.False(s.T(), view.DeliveryReportRequested())
	assert.Contains(s.T(), view.Timestamp(), "Sent: ")
}

func (s *ViewIntegrationTestSuite) TestSms_UnknownAddressCreatesContact() {
	ctx := context.Background()
	require.NoError(s.T(), s.imports.ImportSms(ctx, &models.Sms{
		ThreadID: 1, Address: "+15557654321", Body: "hi", Date: 1, Type: message.SmsBoxInbox, Status: 0,
	}))

	view, err := s.views.Get(ctx, "sms", 1, "")

	require.NoError(s.T(), err)
	assert.True(s.T(), view.DeliveryReportRequested())
	_, err = s.contacts.GetByAddress(ctx, "+15557654321")
	assert.NoError(s.T(), err)
}

// ==================== MMS Tests ====================

func (s *ViewIntegrationTestSuite) TestMms_RetrieveConfWithSlides() {
	ctx := context.Background()
	body := &pdu.Body{}
	body.AddPart(&pdu.Part{ContentType: "text/plain", Charset: pdu.CharsetUTF8, ContentLocation: "text_0.txt", Data: []byte("look")})
	body.AddPart(&pdu.Part{ContentType: "image/png", ContentLocation: "cat.png", Data: []byte{0x89, 0x50, 0x4e, 0x47}})
	conf := &pdu.RetrieveConf{
		MultimediaMessagePdu: pdu.MultimediaMessagePdu{
			Subject: &pdu.EncodedStringValue{Charset: pdu.CharsetUTF8, Data: []byte("Kucing")},
			Date:    1700000000,
			Body:    body,
		},
		From: pdu.NewEncodedStringValue("+15550001111"),
	}
	uri, err := s.persister.Persist(ctx, conf, pdu.MessageBoxInbox, 2)
	require.NoError(s.T(), err)

	views, err := s.views.ListThread(ctx, 2, "")

	require.NoError(s.T(), err)
	require.Len(s.T(), views, 1)
	view := views[0]
	assert.Equal(s.T(), uri, view.URI())
	assert.Equal(s.T(), "look", view.Body())
	require.NotNil(s.T(), view.Mms())
	assert.Equal(s.T(), "Kucing", view.Mms().Subject)
	assert.Equal(s.T(), 8, view.Mms().Size)
	assert.Equal(s.T(), slideshow.AttachmentImage, view.Mms().AttachmentType)
}

func (s *ViewIntegrationTestSuite) TestMms_NotFound() {
	_, err := s.views.Get(context.Background(), "mms", 42, "")

	assert.True(s.T(), apperrors.IsNotFound(err))
}
