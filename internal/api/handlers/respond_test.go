package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
	"fleet-admin-api-server/internal/validation"
)

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	w := respondWith(&validation.Error{Field: "year", Reason: "must be at least 1980"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation")

	w = respondWith(&store.DuplicateKeyError{Field: "vinNumber", Value: "vin-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")

	w = respondWith(&upload.RejectedError{Filename: "x.gif", Reason: "content type image/gif is not allowed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rejected")

	w = respondWith(store.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = respondWith(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// A concurrent write can slip past the store's duplicate pre-check and hit
// the unique index instead; the raw Mongo error is still a caller fault.
func TestRespondErrorMapsUniqueIndexViolation(t *testing.T) {
	raw := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: fleet_admin.vehicles index: vinNumber_1",
	}}}

	w := respondWith(raw)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")
	assert.Contains(t, w.Body.String(), "E11000")
}
