package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

type DepartmentHandler struct {
	Store store.Departments
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Head        string `json:"head"`
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := models.Department{Name: req.Name, Description: req.Description}
	if req.Head != "" {
		oid, err := primitive.ObjectIDFromHex(req.Head)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid head reference"})
			return
		}
		d.Head = &oid
	}

	created, err := h.Store.Create(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *DepartmentHandler) GetAllDepartments(c *gin.Context) {
	departments, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	d, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := bson.M{"name": req.Name, "description": req.Description}
	if req.Head != "" {
		oid, err := primitive.ObjectIDFromHex(req.Head)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid head reference"})
			return
		}
		changes["head"] = oid
	}

	d, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	d, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
