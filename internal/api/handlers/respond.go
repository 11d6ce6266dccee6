package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
	"fleet-admin-api-server/internal/validation"
)

// respondError maps the store/adapter error taxonomy onto transport codes:
// validation and duplicate-key faults are the caller's (400), a missing
// document is 404, anything unanticipated surfaces as 500.
func respondError(c *gin.Context, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": ve.Error()})
		return
	}
	// Covers both the pre-check's typed error and a raw E11000 from the
	// unique indexes when a concurrent write slips past the pre-check.
	if store.IsDuplicate(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate key", "details": err.Error()})
		return
	}
	var re *upload.RejectedError
	if errors.As(err, &re) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file rejected", "details": re.Error()})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
