package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Closed enumerations for vehicle classification fields.
var (
	VehicleTypes      = []string{"sedan", "suv", "pickup", "van", "minibus", "bus", "truck", "motorbike"}
	FuelTypes         = []string{"petrol", "diesel", "electric", "hybrid", "lpg"}
	TransmissionTypes = []string{"manual", "automatic", "semi-automatic"}
	VehicleStatuses   = []string{"active", "available", "in-use", "maintenance", "retired"}
	OwnershipTypes    = []string{"owned", "leased", "rented"}
)

const (
	StatusActive    = "active"
	StatusAvailable = "available"
	StatusInUse     = "in-use"
)

// MinVehicleYear is the lower bound of the accepted model-year range; the
// upper bound is the current year plus one.
const MinVehicleYear = 1980

type Vehicle struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RegistrationNumber string              `bson:"registrationNumber" json:"registrationNumber"`
	VinNumber          string              `bson:"vinNumber" json:"vinNumber"`
	PlateNumber        string              `bson:"plateNumber" json:"plateNumber"`
	VehicleType        string              `bson:"vehicleType" json:"vehicleType"`
	Make               string              `bson:"make" json:"make"`
	Model              string              `bson:"model" json:"model"`
	Year               int                 `bson:"year" json:"year"`
	Brand              *primitive.ObjectID `bson:"brand,omitempty" json:"brand,omitempty"`
	FuelType           string              `bson:"fuelType" json:"fuelType"`
	TransmissionType   string              `bson:"transmissionType,omitempty" json:"transmissionType,omitempty"`
	CurrentMileage     float64             `bson:"currentMileage" json:"currentMileage"`
	PurchaseDate       *time.Time          `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	PurchasePrice      float64             `bson:"purchasePrice,omitempty" json:"purchasePrice,omitempty"`
	Status             string              `bson:"status" json:"status"`
	OwnershipType      string              `bson:"ownershipType,omitempty" json:"ownershipType,omitempty"`
	Department         *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	AssignedDriver     *primitive.ObjectID `bson:"assignedDriver,omitempty" json:"assignedDriver,omitempty"`
	IsAvailableForPool bool                `bson:"isAvailableForPool" json:"isAvailableForPool"`
	Insurance          *primitive.ObjectID `bson:"insurance,omitempty" json:"insurance,omitempty"`
	InsuranceStartDate *time.Time          `bson:"insuranceStartDate,omitempty" json:"insuranceStartDate,omitempty"`
	InsuranceEndDate   *time.Time          `bson:"insuranceEndDate,omitempty" json:"insuranceEndDate,omitempty"`
	RoadWorth          *primitive.ObjectID `bson:"roadWorth,omitempty" json:"roadWorth,omitempty"`
	RoadWorthStartDate *time.Time          `bson:"roadWorthStartDate,omitempty" json:"roadWorthStartDate,omitempty"`
	RoadWorthEndDate   *time.Time          `bson:"roadWorthEndDate,omitempty" json:"roadWorthEndDate,omitempty"`
	Pictures           []string            `bson:"pictures" json:"pictures"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	Color              string              `bson:"color,omitempty" json:"color,omitempty"`
	SeatingCapacity    int                 `bson:"seatingCapacity,omitempty" json:"seatingCapacity,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
