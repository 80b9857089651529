package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syndicma/syndic-api/internal/model"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrForbidden          = errors.New("operation not allowed")
)

// ValidationError carries the field-level messages of one rejected
// payload. The messages are user-facing and already localized.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// BulkValidationError rejects an entire import batch. No row is
// persisted when any row fails.
type BulkValidationError struct {
	Rows []model.RowError
}

func (e *BulkValidationError) Error() string {
	return fmt.Sprintf("bulk import rejected: %d invalid rows", len(e.Rows))
}
