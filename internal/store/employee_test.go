package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-admin-api-server/internal/models"
)

func TestValidateEmployeeStatus(t *testing.T) {
	for _, s := range models.EmployeeStatuses {
		assert.NoError(t, ValidateEmployeeStatus(s), "status %q", s)
	}
	// Empty passes; Create fills the default.
	assert.NoError(t, ValidateEmployeeStatus(""))

	err := ValidateEmployeeStatus("fired")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "fired")
}

func TestIsDuplicateMatchesPreCheckAndIndexErrors(t *testing.T) {
	assert.True(t, IsDuplicate(&DuplicateKeyError{Field: "vinNumber", Value: "vin-1"}))

	raw := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error",
	}}}
	assert.True(t, IsDuplicate(raw))

	assert.False(t, IsDuplicate(errors.New("connection reset")))
	assert.False(t, IsDuplicate(ErrNotFound))
}
