package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/webrana-msgview/internal/models"
	"gorm.io/gorm"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	GetByAddress(ctx context.Context, address string) (*models.Contact, error)
	GetOrCreate(ctx context.Context, address string) (*models.Contact, bool, error)
	SetName(ctx context.Context, address, name string) error
	List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error)
}

// contactRepository implements ContactRepository using GORM
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// GetByAddress retrieves a contact by its address
func (r *contactRepository) GetByAddress(ctx context.Context, address string) (*models.Contact, error) {
	var contact models.Contact
	result := r.db.WithContext(ctx).Where("address = ?", address).First(&contact)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by address: %w", result.Error)
	}
	return &contact, nil
}

// GetOrCreate retrieves a contact by address or creates an unnamed one.
// Returns the contact, a boolean indicating if it was created, and any error
func (r *contactRepository) GetOrCreate(ctx context.Context, address string) (*models.Contact, bool, error) {
	contact, err := r.GetByAddress(ctx, address)
	if err == nil {
		return contact, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	contact = &models.Contact{Address: address}
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		// Handle race condition - another request might have created it
		if isDuplicateKeyError(err) {
			contact, err = r.GetByAddress(ctx, address)
			if err != nil {
				return nil, false, err
			}
			return contact, false, nil
		}
		return nil, false, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, true, nil
}

// SetName names the contact for address, creating it when needed
func (r *contactRepository) SetName(ctx context.Context, address, name string) error {
	contact, _, err := r.GetOrCreate(ctx, address)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(contact).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update contact name: %w", result.Error)
	}
	return nil
}

// List retrieves contacts ordered by address with pagination
func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]models.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	if err := r.db.WithContext(ctx).Order("address ASC").Limit(limit).Offset(offset).Find(&contacts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, total, nil
}
