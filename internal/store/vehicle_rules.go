package store

import (
	"time"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/validation"
)

// VehicleUniqueFields are the identification fields carrying a unique
// index on the vehicles collection.
var VehicleUniqueFields = []string{"registrationNumber", "vinNumber", "plateNumber"}

// VehicleRules builds the constraint table for the vehicles collection.
// The year ceiling follows the wall clock, so the table is rebuilt per call.
func VehicleRules() validation.RuleSet {
	return validation.RuleSet{
		{Field: "registrationNumber", Kind: validation.String, Required: true, Lowercase: true},
		{Field: "vinNumber", Kind: validation.String, Required: true, Lowercase: true},
		{Field: "plateNumber", Kind: validation.String, Required: true, Lowercase: true},
		{Field: "vehicleType", Kind: validation.String, Required: true, Enum: models.VehicleTypes},
		{Field: "make", Kind: validation.String, Required: true, Lowercase: true},
		{Field: "model", Kind: validation.String, Required: true, Lowercase: true},
		{
			Field: "year", Kind: validation.Int, Required: true,
			Min:   validation.Bound(models.MinVehicleYear),
			MaxFn: func() float64 { return float64(time.Now().Year() + 1) },
		},
		{Field: "fuelType", Kind: validation.String, Required: true, Enum: models.FuelTypes},
		{Field: "transmissionType", Kind: validation.String, Enum: models.TransmissionTypes},
		{Field: "currentMileage", Kind: validation.Float, Min: validation.Bound(0)},
		{Field: "purchasePrice", Kind: validation.Float, Min: validation.Bound(0)},
		{Field: "status", Kind: validation.String, Enum: models.VehicleStatuses},
		{Field: "ownershipType", Kind: validation.String, Enum: models.OwnershipTypes},
		{Field: "isAvailableForPool", Kind: validation.Bool},
		{Field: "seatingCapacity", Kind: validation.Int, Min: validation.Bound(1)},
		{Field: "description", Kind: validation.String, Lowercase: true},
		{Field: "color", Kind: validation.String, Lowercase: true},
	}
}
