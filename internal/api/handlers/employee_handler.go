package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/socket"
	"fleet-admin-api-server/internal/storage"
	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
)

type EmployeeHandler struct {
	Store   store.Employees
	Uploads *upload.Adapter
	Files   storage.Storage
	Hub     *socket.Hub
}

type CreateEmployeeRequest struct {
	FirstName   string `form:"firstName" binding:"required"`
	LastName    string `form:"lastName" binding:"required"`
	StaffNumber string `form:"staffNumber" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	PhoneNumber string `form:"phoneNumber" binding:"required"`
	Position    string `form:"position"`
	Department  string `form:"department"`
	Status      string `form:"status"`
}

type UpdateEmployeeRequest struct {
	FirstName   *string `form:"firstName"`
	LastName    *string `form:"lastName"`
	StaffNumber *string `form:"staffNumber"`
	Email       *string `form:"email" binding:"omitempty,email"`
	PhoneNumber *string `form:"phoneNumber"`
	Position    *string `form:"position"`
	Department  *string `form:"department"`
	Status      *string `form:"status"`
}

// CreateEmployee handles POST / (multipart, optional single "photo" file).
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e := models.Employee{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		StaffNumber: req.StaffNumber,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		Status:      req.Status,
	}
	if req.Department != "" {
		oid, err := primitive.ObjectIDFromHex(req.Department)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department reference"})
			return
		}
		e.Department = &oid
	}

	photo, ok := h.stagePhoto(c)
	if !ok {
		return
	}
	e.Photo = photo

	created, err := h.Store.Create(c.Request.Context(), e)
	if err != nil {
		if photo != "" {
			h.discardPhoto(c.Request.Context(), photo)
		}
		respondError(c, err)
		return
	}
	h.notify("created", created.ID.Hex())
	c.JSON(http.StatusCreated, created)
}

func (h *EmployeeHandler) GetAllEmployees(c *gin.Context) {
	employees, err := h.Store.FindAll(c.Request.Context(), bson.M{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	e, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GetEmployeesByDepartment handles GET /department/:departmentId.
func (h *EmployeeHandler) GetEmployeesByDepartment(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("departmentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	employees, err := h.Store.FindAll(c.Request.Context(), bson.M{"department": oid})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles PUT /:id (multipart; a staged photo replaces the
// previous one, whose file is removed best-effort).
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	current, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := bson.M{}
	setPtrString(changes, "firstName", req.FirstName)
	setPtrString(changes, "lastName", req.LastName)
	setPtrString(changes, "staffNumber", req.StaffNumber)
	setPtrString(changes, "email", req.Email)
	setPtrString(changes, "phoneNumber", req.PhoneNumber)
	setPtrString(changes, "position", req.Position)
	setPtrString(changes, "status", req.Status)
	if req.Department != nil && *req.Department != "" {
		oid, err := primitive.ObjectIDFromHex(*req.Department)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department reference"})
			return
		}
		changes["department"] = oid
	}

	photo, ok := h.stagePhoto(c)
	if !ok {
		return
	}
	if photo != "" {
		if current.Photo != "" {
			h.discardPhoto(c.Request.Context(), current.Photo)
		}
		changes["photo"] = photo
	}

	e, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		if photo != "" {
			h.discardPhoto(c.Request.Context(), photo)
		}
		respondError(c, err)
		return
	}
	h.notify("updated", e.ID.Hex())
	c.JSON(http.StatusOK, e)
}

// DeleteEmployee handles DELETE /:id; the photo file goes first, best-effort.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	current, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if current.Photo != "" {
		h.discardPhoto(c.Request.Context(), current.Photo)
	}

	e, err := h.Store.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("deleted", e.ID.Hex())
	c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) stagePhoto(c *gin.Context) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return "", true
	}
	files := form.File["photo"]
	if len(files) == 0 {
		return "", true
	}

	staged, err := h.Uploads.Save(c.Request.Context(), "employees", files[:1])
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return staged[0], true
}

func (h *EmployeeHandler) discardPhoto(ctx context.Context, ref string) {
	if err := h.Files.Remove(ctx, ref); err != nil {
		logrus.WithError(err).WithField("file", ref).Warn("could not remove employee photo")
	}
}

func (h *EmployeeHandler) notify(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Resource: "employees", Action: action, ID: id})
	}
}
