package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

type InsuranceHandler struct {
	Store store.Insurances
}

type CreateInsuranceRequest struct {
	PolicyNumber string     `json:"policyNumber" binding:"required"`
	Provider     string     `json:"provider" binding:"required"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Cost         float64    `json:"cost"`
}

func (h *InsuranceHandler) CreateInsurance(c *gin.Context) {
	var req CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
		return
	}

	created, err := h.Store.Create(c.Request.Context(), models.Insurance{
		PolicyNumber: req.PolicyNumber,
		Provider:     req.Provider,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Cost:         req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InsuranceHandler) GetAllInsurances(c *gin.Context) {
	policies, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, policies)
}

func (h *InsuranceHandler) GetInsurance(c *gin.Context) {
	i, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}

func (h *InsuranceHandler) UpdateInsurance(c *gin.Context) {
	var req CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
		return
	}

	changes := bson.M{"policyNumber": req.PolicyNumber, "provider": req.Provider, "cost": req.Cost}
	if req.StartDate != nil {
		changes["startDate"] = *req.StartDate
	}
	if req.EndDate != nil {
		changes["endDate"] = *req.EndDate
	}

	i, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}

func (h *InsuranceHandler) DeleteInsurance(c *gin.Context) {
	i, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, i)
}
