package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/webrana-msgview/internal/cursor"
	"github.com/welldanyogia/webrana-msgview/internal/models"
	"github.com/welldanyogia/webrana-msgview/internal/repository"
)

// MockContactRepository implements repository.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

// GetByAddress retrieves a contact by its address
func (m *MockContactRepository) GetByAddress(ctx context.Context, address string) (*models.Contact, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

// GetOrCreate retrieves or creates a contact
func (m *MockContactRepository) GetOrCreate(ctx context.Context, address string) (*models.Contact, bool, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Contact), args.Bool(1), args.Error(2)
}

// SetName names a contact
func (m *MockContactRepository) SetName(ctx context.Context, address, name string) error {
	args := m.Called(ctx, address, name)
	return args.Error(0)
}

// List retrieves contacts with pagination
func (m *MockContactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Contact), args.Get(1).(int64), args.Error(2)
}

// MockConversationRepository implements repository.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// Thread returns the rows of a thread
func (m *MockConversationRepository) Thread(ctx context.Context, threadID int64) (*repository.Rows, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Rows), args.Error(1)
}

// Message returns one row
func (m *MockConversationRepository) Message(ctx context.Context, kind string, id int64) (cursor.Values, *cursor.ColumnsMap, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(cursor.Values), args.Get(1).(*cursor.ColumnsMap), args.Error(2)
}

// CreateSms stores an SMS row
func (m *MockConversationRepository) CreateSms(ctx context.Context, sms *models.Sms) error {
	args := m.Called(ctx, sms)
	return args.Error(0)
}
