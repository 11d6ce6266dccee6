package resolve

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

// Lookup capabilities injected into the resolver. The persistence layer
// never materializes references; this package splices them in at read time.
type DepartmentLookup interface {
	FindByID(ctx context.Context, id string) (*models.Department, error)
}

type EmployeeLookup interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

type BrandLookup interface {
	FindByID(ctx context.Context, id string) (*models.Brand, error)
}

type InsuranceLookup interface {
	FindByID(ctx context.Context, id string) (*models.Insurance, error)
}

type RoadWorthLookup interface {
	FindByID(ctx context.Context, id string) (*models.RoadWorth, error)
}

// VehicleView is a vehicle with its references expanded into projected
// embedded objects. This is the shape every read endpoint returns.
type VehicleView struct {
	ID                 primitive.ObjectID    `json:"id"`
	RegistrationNumber string                `json:"registrationNumber"`
	VinNumber          string                `json:"vinNumber"`
	PlateNumber        string                `json:"plateNumber"`
	VehicleType        string                `json:"vehicleType"`
	Make               string                `json:"make"`
	Model              string                `json:"model"`
	Year               int                   `json:"year"`
	Brand              *models.BrandRef      `json:"brand,omitempty"`
	FuelType           string                `json:"fuelType"`
	TransmissionType   string                `json:"transmissionType,omitempty"`
	CurrentMileage     float64               `json:"currentMileage"`
	PurchaseDate       *time.Time            `json:"purchaseDate,omitempty"`
	PurchasePrice      float64               `json:"purchasePrice,omitempty"`
	Status             string                `json:"status"`
	OwnershipType      string                `json:"ownershipType,omitempty"`
	Department         *models.DepartmentRef `json:"department,omitempty"`
	AssignedDriver     *models.DriverRef     `json:"assignedDriver,omitempty"`
	IsAvailableForPool bool                  `json:"isAvailableForPool"`
	Insurance          *models.InsuranceRef  `json:"insurance,omitempty"`
	InsuranceStartDate *time.Time            `json:"insuranceStartDate,omitempty"`
	InsuranceEndDate   *time.Time            `json:"insuranceEndDate,omitempty"`
	RoadWorth          *models.RoadWorthRef  `json:"roadWorth,omitempty"`
	RoadWorthStartDate *time.Time            `json:"roadWorthStartDate,omitempty"`
	RoadWorthEndDate   *time.Time            `json:"roadWorthEndDate,omitempty"`
	Pictures           []string              `json:"pictures"`
	Description        string                `json:"description,omitempty"`
	Color              string                `json:"color,omitempty"`
	SeatingCapacity    int                   `json:"seatingCapacity,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// Resolver performs the read-time joins for vehicle responses.
type Resolver struct {
	Departments DepartmentLookup
	Employees   EmployeeLookup
	Brands      BrandLookup
	Insurances  InsuranceLookup
	RoadWorths  RoadWorthLookup
}

// Vehicle expands all references on v. A dangling reference resolves to an
// absent embedded object, not an error; any other lookup fault aborts.
func (r *Resolver) Vehicle(ctx context.Context, v models.Vehicle) (*VehicleView, error) {
	view := &VehicleView{
		ID:                 v.ID,
		RegistrationNumber: v.RegistrationNumber,
		VinNumber:          v.VinNumber,
		PlateNumber:        v.PlateNumber,
		VehicleType:        v.VehicleType,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		FuelType:           v.FuelType,
		TransmissionType:   v.TransmissionType,
		CurrentMileage:     v.CurrentMileage,
		PurchaseDate:       v.PurchaseDate,
		PurchasePrice:      v.PurchasePrice,
		Status:             v.Status,
		OwnershipType:      v.OwnershipType,
		IsAvailableForPool: v.IsAvailableForPool,
		InsuranceStartDate: v.InsuranceStartDate,
		InsuranceEndDate:   v.InsuranceEndDate,
		RoadWorthStartDate: v.RoadWorthStartDate,
		RoadWorthEndDate:   v.RoadWorthEndDate,
		Pictures:           v.Pictures,
		Description:        v.Description,
		Color:              v.Color,
		SeatingCapacity:    v.SeatingCapacity,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if view.Pictures == nil {
		view.Pictures = []string{}
	}

	if v.Department != nil {
		d, err := r.Departments.FindByID(ctx, v.Department.Hex())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if d != nil {
			view.Department = &models.DepartmentRef{ID: d.ID, Name: d.Name, Description: d.Description, Head: d.Head}
		}
	}
	if v.AssignedDriver != nil {
		e, err := r.Employees.FindByID(ctx, v.AssignedDriver.Hex())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if e != nil {
			view.AssignedDriver = &models.DriverRef{
				ID:          e.ID,
				FirstName:   e.FirstName,
				LastName:    e.LastName,
				StaffNumber: e.StaffNumber,
				Email:       e.Email,
				PhoneNumber: e.PhoneNumber,
			}
		}
	}
	if v.Brand != nil {
		b, err := r.Brands.FindByID(ctx, v.Brand.Hex())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if b != nil {
			view.Brand = &models.BrandRef{ID: b.ID, Name: b.Name}
		}
	}
	if v.Insurance != nil {
		i, err := r.Insurances.FindByID(ctx, v.Insurance.Hex())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if i != nil {
			view.Insurance = &models.InsuranceRef{ID: i.ID, PolicyNumber: i.PolicyNumber, Provider: i.Provider, EndDate: i.EndDate}
		}
	}
	if v.RoadWorth != nil {
		w, err := r.RoadWorths.FindByID(ctx, v.RoadWorth.Hex())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if w != nil {
			view.RoadWorth = &models.RoadWorthRef{ID: w.ID, CertificateNumber: w.CertificateNumber, ExpiryDate: w.ExpiryDate}
		}
	}
	return view, nil
}

// Vehicles resolves a list; one lookup fault aborts the whole response.
func (r *Resolver) Vehicles(ctx context.Context, vehicles []models.Vehicle) ([]VehicleView, error) {
	views := make([]VehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		view, err := r.Vehicle(ctx, v)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
