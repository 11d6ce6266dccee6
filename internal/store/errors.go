package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"fleet-admin-api-server/internal/validation"
)

// ErrNotFound reports that no document exists for the given id.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique-constraint collision on an
// identification field.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value %q for unique field %q", e.Value, e.Field)
}

// IsValidation reports whether err came from the constraint-table validator.
func IsValidation(err error) bool {
	var ve *validation.Error
	return errors.As(err, &ve)
}

// IsDuplicate reports whether err is a unique-constraint collision, either
// detected by the pre-insert check or raised by a Mongo unique index.
func IsDuplicate(err error) bool {
	var de *DuplicateKeyError
	if errors.As(err, &de) {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}
