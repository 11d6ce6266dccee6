package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

type NextOfKinHandler struct {
	Store store.NextOfKins
}

type CreateNextOfKinRequest struct {
	Employee     string `json:"employee" binding:"required"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	Address      string `json:"address"`
}

func (h *NextOfKinHandler) CreateNextOfKin(c *gin.Context) {
	var req CreateNextOfKinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employeeID, err := primitive.ObjectIDFromHex(req.Employee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee reference"})
		return
	}

	created, err := h.Store.Create(c.Request.Context(), models.NextOfKin{
		Employee:     employeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Relationship: req.Relationship,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *NextOfKinHandler) GetAllNextOfKins(c *gin.Context) {
	kins, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kins)
}

func (h *NextOfKinHandler) GetNextOfKin(c *gin.Context) {
	n, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// GetNextOfKinsByEmployee handles GET /employee/:employeeId.
func (h *NextOfKinHandler) GetNextOfKinsByEmployee(c *gin.Context) {
	kins, err := h.Store.FindByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kins)
}

func (h *NextOfKinHandler) UpdateNextOfKin(c *gin.Context) {
	var req CreateNextOfKinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employeeID, err := primitive.ObjectIDFromHex(req.Employee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee reference"})
		return
	}

	n, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), bson.M{
		"employee":     employeeID,
		"firstName":    req.FirstName,
		"lastName":     req.LastName,
		"relationship": req.Relationship,
		"phoneNumber":  req.PhoneNumber,
		"address":      req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NextOfKinHandler) DeleteNextOfKin(c *gin.Context) {
	n, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
