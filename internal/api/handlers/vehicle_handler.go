package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/resolve"
	"fleet-admin-api-server/internal/socket"
	"fleet-admin-api-server/internal/storage"
	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
)

type VehicleHandler struct {
	Store    store.Vehicles
	Resolver *resolve.Resolver
	Uploads  *upload.Adapter
	Files    storage.Storage
	Hub      *socket.Hub
}

type CreateVehicleRequest struct {
	RegistrationNumber string     `form:"registrationNumber" binding:"required"`
	VinNumber          string     `form:"vinNumber" binding:"required"`
	PlateNumber        string     `form:"plateNumber" binding:"required"`
	VehicleType        string     `form:"vehicleType" binding:"required"`
	Make               string     `form:"make" binding:"required"`
	Model              string     `form:"model" binding:"required"`
	Year               int        `form:"year" binding:"required"`
	FuelType           string     `form:"fuelType" binding:"required"`
	TransmissionType   string     `form:"transmissionType"`
	CurrentMileage     *float64   `form:"currentMileage"`
	PurchaseDate       *time.Time `form:"purchaseDate" time_format:"2006-01-02"`
	PurchasePrice      *float64   `form:"purchasePrice"`
	Status             string     `form:"status"`
	OwnershipType      string     `form:"ownershipType"`
	Department         string     `form:"department"`
	AssignedDriver     string     `form:"assignedDriver"`
	Brand              string     `form:"brand"`
	IsAvailableForPool *bool      `form:"isAvailableForPool"`
	Insurance          string     `form:"insurance"`
	InsuranceStartDate *time.Time `form:"insuranceStartDate" time_format:"2006-01-02"`
	InsuranceEndDate   *time.Time `form:"insuranceEndDate" time_format:"2006-01-02"`
	RoadWorth          string     `form:"roadWorth"`
	RoadWorthStartDate *time.Time `form:"roadWorthStartDate" time_format:"2006-01-02"`
	RoadWorthEndDate   *time.Time `form:"roadWorthEndDate" time_format:"2006-01-02"`
	Description        string     `form:"description"`
	Color              string     `form:"color"`
	SeatingCapacity    *int       `form:"seatingCapacity"`
}

// UpdateVehicleRequest mirrors the create payload with every field
// optional; only fields present in the form reach the store.
type UpdateVehicleRequest struct {
	RegistrationNumber *string    `form:"registrationNumber"`
	VinNumber          *string    `form:"vinNumber"`
	PlateNumber        *string    `form:"plateNumber"`
	VehicleType        *string    `form:"vehicleType"`
	Make               *string    `form:"make"`
	Model              *string    `form:"model"`
	Year               *int       `form:"year"`
	FuelType           *string    `form:"fuelType"`
	TransmissionType   *string    `form:"transmissionType"`
	CurrentMileage     *float64   `form:"currentMileage"`
	PurchaseDate       *time.Time `form:"purchaseDate" time_format:"2006-01-02"`
	PurchasePrice      *float64   `form:"purchasePrice"`
	Status             *string    `form:"status"`
	OwnershipType      *string    `form:"ownershipType"`
	Department         *string    `form:"department"`
	AssignedDriver     *string    `form:"assignedDriver"`
	Brand              *string    `form:"brand"`
	IsAvailableForPool *bool      `form:"isAvailableForPool"`
	Insurance          *string    `form:"insurance"`
	InsuranceStartDate *time.Time `form:"insuranceStartDate" time_format:"2006-01-02"`
	InsuranceEndDate   *time.Time `form:"insuranceEndDate" time_format:"2006-01-02"`
	RoadWorth          *string    `form:"roadWorth"`
	RoadWorthStartDate *time.Time `form:"roadWorthStartDate" time_format:"2006-01-02"`
	RoadWorthEndDate   *time.Time `form:"roadWorthEndDate" time_format:"2006-01-02"`
	Description        *string    `form:"description"`
	Color              *string    `form:"color"`
	SeatingCapacity    *int       `form:"seatingCapacity"`
}

// CreateVehicle handles POST / (multipart, up to 5 images in "pictures").
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := bson.M{
		"registrationNumber": req.RegistrationNumber,
		"vinNumber":          req.VinNumber,
		"plateNumber":        req.PlateNumber,
		"vehicleType":        req.VehicleType,
		"make":               req.Make,
		"model":              req.Model,
		"year":               req.Year,
		"fuelType":           req.FuelType,
	}
	setString(doc, "transmissionType", req.TransmissionType)
	setString(doc, "status", req.Status)
	setString(doc, "ownershipType", req.OwnershipType)
	setString(doc, "description", req.Description)
	setString(doc, "color", req.Color)
	if req.CurrentMileage != nil {
		doc["currentMileage"] = *req.CurrentMileage
	}
	if req.PurchasePrice != nil {
		doc["purchasePrice"] = *req.PurchasePrice
	}
	if req.SeatingCapacity != nil {
		doc["seatingCapacity"] = *req.SeatingCapacity
	}
	if req.IsAvailableForPool != nil {
		doc["isAvailableForPool"] = *req.IsAvailableForPool
	}
	setTime(doc, "purchaseDate", req.PurchaseDate)
	setTime(doc, "insuranceStartDate", req.InsuranceStartDate)
	setTime(doc, "insuranceEndDate", req.InsuranceEndDate)
	setTime(doc, "roadWorthStartDate", req.RoadWorthStartDate)
	setTime(doc, "roadWorthEndDate", req.RoadWorthEndDate)

	for field, raw := range map[string]string{
		"department":     req.Department,
		"assignedDriver": req.AssignedDriver,
		"brand":          req.Brand,
		"insurance":      req.Insurance,
		"roadWorth":      req.RoadWorth,
	} {
		if raw == "" {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s reference", field)})
			return
		}
		doc[field] = oid
	}

	if err := checkDateWindows(doc, nil); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pictures, ok := h.stagePictures(c, nil)
	if !ok {
		return
	}
	if len(pictures) > 0 {
		doc["pictures"] = pictures
	}

	v, err := h.Store.Create(c.Request.Context(), doc)
	if err != nil {
		h.discardPictures(c.Request.Context(), pictures)
		respondError(c, err)
		return
	}
	h.notify("created", v.ID.Hex())
	h.respondVehicle(c, http.StatusCreated, *v)
}

// GetAllVehicles handles GET /.
func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	h.listVehicles(c, bson.M{})
}

// GetVehicle handles GET /:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	v, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondVehicle(c, http.StatusOK, *v)
}

// GetVehiclesByStatus handles GET /status/:status.
func (h *VehicleHandler) GetVehiclesByStatus(c *gin.Context) {
	h.listVehicles(c, bson.M{"status": c.Param("status")})
}

// GetVehiclesByDepartment handles GET /department/:departmentId.
func (h *VehicleHandler) GetVehiclesByDepartment(c *gin.Context) {
	h.listVehiclesByRef(c, "department", c.Param("departmentId"))
}

// GetVehiclesByDriver handles GET /driver/:driverId.
func (h *VehicleHandler) GetVehiclesByDriver(c *gin.Context) {
	h.listVehiclesByRef(c, "assignedDriver", c.Param("driverId"))
}

// GetVehiclesByBrand handles GET /brand/:brandId.
func (h *VehicleHandler) GetVehiclesByBrand(c *gin.Context) {
	h.listVehiclesByRef(c, "brand", c.Param("brandId"))
}

// GetPoolVehicles handles GET /pool/available: shareable vehicles that are
// currently free, regardless of any other filter.
func (h *VehicleHandler) GetPoolVehicles(c *gin.Context) {
	h.listVehicles(c, bson.M{"isAvailableForPool": true, "status": models.StatusAvailable})
}

// UpdateVehicle handles PUT /:id (multipart; staged files are appended to
// the existing picture list).
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	current, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := bson.M{}
	setPtrString(changes, "registrationNumber", req.RegistrationNumber)
	setPtrString(changes, "vinNumber", req.VinNumber)
	setPtrString(changes, "plateNumber", req.PlateNumber)
	setPtrString(changes, "vehicleType", req.VehicleType)
	setPtrString(changes, "make", req.Make)
	setPtrString(changes, "model", req.Model)
	setPtrString(changes, "fuelType", req.FuelType)
	setPtrString(changes, "transmissionType", req.TransmissionType)
	setPtrString(changes, "status", req.Status)
	setPtrString(changes, "ownershipType", req.OwnershipType)
	setPtrString(changes, "description", req.Description)
	setPtrString(changes, "color", req.Color)
	if req.Year != nil {
		changes["year"] = *req.Year
	}
	if req.PurchasePrice != nil {
		changes["purchasePrice"] = *req.PurchasePrice
	}
	if req.SeatingCapacity != nil {
		changes["seatingCapacity"] = *req.SeatingCapacity
	}
	if req.IsAvailableForPool != nil {
		changes["isAvailableForPool"] = *req.IsAvailableForPool
	}
	setTime(changes, "purchaseDate", req.PurchaseDate)
	setTime(changes, "insuranceStartDate", req.InsuranceStartDate)
	setTime(changes, "insuranceEndDate", req.InsuranceEndDate)
	setTime(changes, "roadWorthStartDate", req.RoadWorthStartDate)
	setTime(changes, "roadWorthEndDate", req.RoadWorthEndDate)

	if req.CurrentMileage != nil {
		if *req.CurrentMileage < current.CurrentMileage {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("current mileage cannot decrease below %v", current.CurrentMileage),
			})
			return
		}
		changes["currentMileage"] = *req.CurrentMileage
	}

	for field, raw := range map[string]*string{
		"department":     req.Department,
		"assignedDriver": req.AssignedDriver,
		"brand":          req.Brand,
		"insurance":      req.Insurance,
		"roadWorth":      req.RoadWorth,
	} {
		if raw == nil {
			continue
		}
		if *raw == "" {
			changes[field] = nil
			continue
		}
		oid, err := primitive.ObjectIDFromHex(*raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s reference", field)})
			return
		}
		changes[field] = oid
	}

	if err := checkDateWindows(changes, current); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staged, ok := h.stagePictures(c, current.Pictures)
	if !ok {
		return
	}
	if len(staged) > 0 {
		changes["pictures"] = append(append([]string{}, current.Pictures...), staged...)
	}

	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		h.discardPictures(c.Request.Context(), staged)
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

// DeleteVehicle handles DELETE /:id. Image files referenced by the record
// are removed first, best-effort; the record deletion always proceeds.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id := c.Param("id")
	current, err := h.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.discardPictures(c.Request.Context(), current.Pictures)

	v, err := h.Store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("deleted", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /:id/status.
func (h *VehicleHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), bson.M{"status": req.Status})
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

type updateMileageRequest struct {
	CurrentMileage *float64 `json:"currentMileage" binding:"required"`
}

// UpdateMileage handles PUT /:id/mileage. Mileage is monotonically
// non-decreasing; an equal reading is accepted and persisted as-is.
func (h *VehicleHandler) UpdateMileage(c *gin.Context) {
	var req updateMileageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentMileage is required"})
		return
	}

	current, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if *req.CurrentMileage < current.CurrentMileage {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("current mileage cannot decrease below %v", current.CurrentMileage),
		})
		return
	}

	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), bson.M{"currentMileage": *req.CurrentMileage})
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

type removePictureRequest struct {
	PictureURL string `json:"pictureUrl" binding:"required"`
}

// RemovePicture handles PUT /:id/pictures: drops one picture reference and
// deletes the backing file best-effort before the record is updated.
func (h *VehicleHandler) RemovePicture(c *gin.Context) {
	var req removePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pictureUrl is required"})
		return
	}

	current, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	remaining := make([]string, 0, len(current.Pictures))
	found := false
	for _, p := range current.Pictures {
		if p == req.PictureURL {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "picture is not attached to this vehicle"})
		return
	}

	h.discardPictures(c.Request.Context(), []string{req.PictureURL})

	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), bson.M{"pictures": remaining})
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

type assignDriverRequest struct {
	DriverID string `json:"driverId" binding:"required"`
}

// AssignDriver handles PUT /:id/driver: sets the driver and forces the
// status to in-use.
func (h *VehicleHandler) AssignDriver(c *gin.Context) {
	var req assignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverId is required"})
		return
	}

	driver, err := h.Resolver.Employees.FindByID(c.Request.Context(), req.DriverID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver id"})
			return
		}
		respondError(c, err)
		return
	}

	changes := bson.M{"assignedDriver": driver.ID, "status": models.StatusInUse}
	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

// UnassignDriver handles DELETE /:id/driver: clears the driver and resets
// the status to available.
func (h *VehicleHandler) UnassignDriver(c *gin.Context) {
	changes := bson.M{"assignedDriver": nil, "status": models.StatusAvailable}
	v, err := h.Store.UpdateByID(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	h.notify("updated", v.ID.Hex())
	h.respondVehicle(c, http.StatusOK, *v)
}

// --- helpers ---

func (h *VehicleHandler) listVehicles(c *gin.Context, filter bson.M) {
	vehicles, err := h.Store.FindAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.Resolver.Vehicles(c.Request.Context(), vehicles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *VehicleHandler) listVehiclesByRef(c *gin.Context, field, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.listVehicles(c, bson.M{field: oid})
}

func (h *VehicleHandler) respondVehicle(c *gin.Context, code int, v models.Vehicle) {
	view, err := h.Resolver.Vehicle(c.Request.Context(), v)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(code, view)
}

// stagePictures runs attached files through the upload adapter. The bool
// result is false when a response has already been written.
func (h *VehicleHandler) stagePictures(c *gin.Context, existing []string) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, true
	}
	files := form.File["pictures"]
	if len(files) == 0 {
		return nil, true
	}
	if len(existing)+len(files) > h.Uploads.Limit() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("a vehicle carries at most %d pictures, it already has %d", h.Uploads.Limit(), len(existing)),
		})
		return nil, false
	}

	staged, err := h.Uploads.Save(c.Request.Context(), "vehicles", files)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return staged, true
}

// discardPictures deletes files best-effort: a failure is logged and never
// escalates, so the record mutation it accompanies still completes.
func (h *VehicleHandler) discardPictures(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := h.Files.Remove(ctx, ref); err != nil {
			logrus.WithError(err).WithField("file", ref).Warn("could not remove vehicle picture")
		}
	}
}

func (h *VehicleHandler) notify(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Resource: "vehicles", Action: action, ID: id})
	}
}

// checkDateWindows rejects insurance or roadworthiness windows whose end
// does not fall strictly after the start. On update the incoming change is
// compared against the stored counterpart when only one side moves.
func checkDateWindows(doc bson.M, current *models.Vehicle) error {
	windows := []struct {
		name        string
		startField  string
		endField    string
		storedStart *time.Time
		storedEnd   *time.Time
	}{
		{"insurance", "insuranceStartDate", "insuranceEndDate", nil, nil},
		{"roadworthiness", "roadWorthStartDate", "roadWorthEndDate", nil, nil},
	}
	if current != nil {
		windows[0].storedStart = current.InsuranceStartDate
		windows[0].storedEnd = current.InsuranceEndDate
		windows[1].storedStart = current.RoadWorthStartDate
		windows[1].storedEnd = current.RoadWorthEndDate
	}

	for _, w := range windows {
		start := w.storedStart
		if t, ok := doc[w.startField].(time.Time); ok {
			start = &t
		}
		end := w.storedEnd
		if t, ok := doc[w.endField].(time.Time); ok {
			end = &t
		}
		if start != nil && end != nil && !end.After(*start) {
			return fmt.Errorf("%s end date must be after its start date", w.name)
		}
	}
	return nil
}

func setString(doc bson.M, field, value string) {
	if value != "" {
		doc[field] = value
	}
}

func setPtrString(doc bson.M, field string, value *string) {
	if value != nil {
		doc[field] = *value
	}
}

func setTime(doc bson.M, field string, value *time.Time) {
	if value != nil {
		doc[field] = *value
	}
}
