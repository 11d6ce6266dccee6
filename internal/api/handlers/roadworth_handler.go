package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

type RoadWorthHandler struct {
	Store store.RoadWorths
}

type CreateRoadWorthRequest struct {
	CertificateNumber string     `json:"certificateNumber" binding:"required"`
	TestCenter        string     `json:"testCenter"`
	IssueDate         *time.Time `json:"issueDate"`
	ExpiryDate        *time.Time `json:"expiryDate"`
}

func (h *RoadWorthHandler) CreateRoadWorth(c *gin.Context) {
	var req CreateRoadWorthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IssueDate != nil && req.ExpiryDate != nil && !req.ExpiryDate.After(*req.IssueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry date must be after issue date"})
		return
	}

	created, err := h.Store.Create(c.Request.Context(), models.RoadWorth{
		CertificateNumber: req.CertificateNumber,
		TestCenter:        req.TestCenter,
		IssueDate:         req.IssueDate,
		ExpiryDate:        req.ExpiryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RoadWorthHandler) GetAllRoadWorths(c *gin.Context) {
	certs, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *RoadWorthHandler) GetRoadWorth(c *gin.Context) {
	r, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RoadWorthHandler) UpdateRoadWorth(c *gin.Context) {
	var req CreateRoadWorthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IssueDate != nil && req.ExpiryDate != nil && !req.ExpiryDate.After(*req.IssueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry date must be after issue date"})
		return
	}

	changes := bson.M{"certificateNumber": req.CertificateNumber, "testCenter": req.TestCenter}
	if req.IssueDate != nil {
		changes["issueDate"] = *req.IssueDate
	}
	if req.ExpiryDate != nil {
		changes["expiryDate"] = *req.ExpiryDate
	}

	r, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RoadWorthHandler) DeleteRoadWorth(c *gin.Context) {
	r, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
