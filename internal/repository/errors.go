package repository

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/welldanyogia/webrana-msgview/internal/errors"
)

// Common repository errors
var (
	ErrNotFound       = fmt.Errorf("record %w", apperrors.ErrNotFound)
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// isDuplicateKeyError checks if the error is a duplicate key violation
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505") // PostgreSQL unique violation code
}
