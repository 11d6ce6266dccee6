package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

type BrandHandler struct {
	Store store.Brands
}

type CreateBrandRequest struct {
	Name   string   `json:"name" binding:"required"`
	Models []string `json:"models"`
}

func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Store.Create(c.Request.Context(), models.Brand{Name: req.Name, Models: req.Models})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BrandHandler) GetAllBrands(c *gin.Context) {
	brands, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) GetBrand(c *gin.Context) {
	b, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBrandModels handles GET /name/:name: the model list for one brand,
// for the dashboard's dependent make/model dropdowns.
func (h *BrandHandler) GetBrandModels(c *gin.Context) {
	b, err := h.Store.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": b.Name, "models": b.Models})
}

func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := bson.M{"name": req.Name}
	if req.Models != nil {
		changes["models"] = req.Models
	}

	b, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	b, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
