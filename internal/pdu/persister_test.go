package pdu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersisterTestSuite is the test suite for Persister
type PersisterTestSuite struct {
	suite.Suite
	db        *gorm.DB
	parts     storage.FileStorage
	persister *Persister
}

// SetupTest gives every test a fresh database and part directory
func (s *PersisterTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	// every pooled connection to :memory: would open its own empty database
	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	sqlDB.SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(s.T(), db.AutoMigrate(&models.Pdu{}, &models.Addr{}, &models.Part{}))

	parts, err := storage.NewLocalStorage(s.T().TempDir())
	require.NoError(s.T(), err)

	s.db = db
	s.parts = parts
	s.persister = NewPersister(db, parts)
	s.persister.now = func() time.Time { return time.Unix(1700000000, 0) }
}

// TearDownTest closes the database
func (s *PersisterTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// TestPersisterTestSuite runs the test suite
func TestPersisterTestSuite(t *testing.T) {
	suite.Run(t, new(PersisterTestSuite))
}

// ==================== Persist/Load Tests ====================

func (s *PersisterTestSuite) TestNotificationInd_RoundTrip() {
	// Arrange
	ctx := context.Background()
	ind := &NotificationInd{
		From:            NewEncodedStringValue("+15551230000"),
		Subject:         NewEncodedStringValue("Party"),
		ContentLocation: []byte("http://mmsc.example/abc"),
		MessageSize:     20480,
		Expiry:          1700086400,
		TransactionID:   []byte("T1"),
	}

	// Act
	uri, err := s.persister.Persist(ctx, ind, MessageBoxInbox, 7)
	require.NoError(s.T(), err)
	loaded, err := s.persister.Load(ctx, uri)

	// Assert
	require.NoError(s.T(), err)
	got, ok := loaded.(*NotificationInd)
	require.True(s.T(), ok)
	from, _ := got.Sender().Text()
	assert.Equal(s.T(), "+15551230000", from)
	assert.Equal(s.T(), "http://mmsc.example/abc", string(got.ContentLocation))
	assert.Equal(s.T(), int64(20480), got.MessageSize)
	assert.Equal(s.T(), int64(1700086400), got.Timestamp())

	var row models.Pdu
	require.NoError(s.T(), s.db.First(&row).Error)
	assert.Equal(s.T(), int64(1700000000), row.Date)
	assert.Equal(s.T(), MessageTypeNotificationInd, row.MessageType)
	assert.Equal(s.T(), int64(7), row.ThreadID)
}

func (s *PersisterTestSuite) TestRetrieveConf_RoundTripWithBinaryPart() {
	// Arrange
	ctx := context.Background()
	body := &Body{}
	body.AddPart(&Part{ContentType: "text/plain", Charset: CharsetISO8859_1, Name: "t.txt", Data: []byte{0x63, 0x61, 0x66, 0xe9}})
	body.AddPart(&Part{ContentType: "image/jpeg", Filename: "cat.jpg", ContentID: "img", Data: []byte{0xff, 0xd8, 0xff}})
	conf := &RetrieveConf{
		MultimediaMessagePdu: MultimediaMessagePdu{
			Subject: &EncodedStringValue{Charset: CharsetUTF8, Data: []byte("日本")},
			Date:    1699990000,
			Body:    body,
		},
		From: NewEncodedStringValue("+15559990000"),
		To:   []*EncodedStringValue{NewEncodedStringValue("+15550000001")},
	}

	// Act
	uri, err := s.persister.Persist(ctx, conf, MessageBoxInbox, 3)
	require.NoError(s.T(), err)
	loaded, err := s.persister.Load(ctx, uri)

	// Assert
	require.NoError(s.T(), err)
	got, ok := loaded.(*RetrieveConf)
	require.True(s.T(), ok)
	assert.Equal(s.T(), int64(1699990000), got.Timestamp())
	subject, err := got.Subject.Text()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "日本", subject)
	require.Len(s.T(), got.To, 1)

	parts := got.MultimediaBody().Parts
	require.Len(s.T(), parts, 2)
	text, err := Decode(parts[0].Charset, parts[0].Data)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "café", text)
	assert.Equal(s.T(), []byte{0xff, 0xd8, 0xff}, parts[1].Data)

	var stored models.Part
	require.NoError(s.T(), s.db.Where("ct = ?", "image/jpeg").First(&stored).Error)
	assert.NotEmpty(s.T(), stored.DataPath)
	assert.Empty(s.T(), stored.Text)
}

func (s *PersisterTestSuite) TestSendReq_RoundTripKeepsReportFlags() {
	// Arrange
	ctx := context.Background()
	req := &SendReq{
		MultimediaMessagePdu: MultimediaMessagePdu{Date: 1699000000},
		To:                   []*EncodedStringValue{NewEncodedStringValue("+15550000002")},
		DeliveryReport:       ValueYes,
	}

	// Act
	uri, err := s.persister.Persist(ctx, req, MessageBoxOutbox, 1)
	require.NoError(s.T(), err)
	loaded, err := s.persister.Load(ctx, uri)

	// Assert
	require.NoError(s.T(), err)
	got, ok := loaded.(*SendReq)
	require.True(s.T(), ok)
	assert.Equal(s.T(), ValueYes, got.DeliveryReport)
	assert.Zero(s.T(), got.ReadReport)

	var row models.Pdu
	require.NoError(s.T(), s.db.First(&row).Error)
	require.NotNil(s.T(), row.DeliveryReport)
	assert.Equal(s.T(), "128", *row.DeliveryReport)
	assert.Nil(s.T(), row.ReadReport)

	var from models.Addr
	require.NoError(s.T(), s.db.Where("type = ?", AddrTypeFrom).First(&from).Error)
	assert.Equal(s.T(), InsertAddressToken, from.Address)
}

// ==================== Load Error Tests ====================

func (s *PersisterTestSuite) TestLoad_NotFound() {
	_, err := s.persister.Load(context.Background(), URIFor(404))

	assert.ErrorIs(s.T(), err, apperrors.ErrPduNotFound)
	assert.True(s.T(), apperrors.IsNotFound(err))
}

func (s *PersisterTestSuite) TestLoad_InvalidURI() {
	_, err := s.persister.Load(context.Background(), "content://sms/1")

	assert.True(s.T(), apperrors.IsInvalidInput(err))
}

func (s *PersisterTestSuite) TestLoad_UnsupportedType() {
	row := models.Pdu{ThreadID: 1, Date: 1, MessageBox: MessageBoxInbox, MessageType: 0x86}
	require.NoError(s.T(), s.db.Create(&row).Error)

	_, err := s.persister.Load(context.Background(), URIFor(row.ID))

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "0x86")
}

func (s *PersisterTestSuite) TestLoad_UTF8AddressWrittenByOtherTools() {
	row := models.Pdu{
		ThreadID: 1, Date: 1, MessageBox: MessageBoxInbox, MessageType: MessageTypeNotificationInd,
		Addrs: []models.Addr{{Address: "Zoë 🙂", Type: AddrTypeFrom, Charset: CharsetUTF8}},
	}
	require.NoError(s.T(), s.db.Create(&row).Error)

	loaded, err := s.persister.Load(context.Background(), URIFor(row.ID))

	require.NoError(s.T(), err)
	from, err := loaded.(*NotificationInd).Sender().Text()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Zoë 🙂", from)
}

func (s *PersisterTestSuite) TestPersist_BinaryPartWithoutStorageFails() {
	p := NewPersister(s.db, nil)
	body := &Body{}
	body.AddPart(&Part{ContentType: "audio/amr", Data: []byte{1, 2}})
	conf := &RetrieveConf{MultimediaMessagePdu: MultimediaMessagePdu{Date: 1, Body: body}}

	_, err := p.Persist(context.Background(), conf, MessageBoxInbox, 1)

	assert.Error(s.T(), err)
	var count int64
	s.db.Model(&models.Pdu{}).Count(&count)
	assert.Zero(s.T(), count)
}
