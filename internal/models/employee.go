package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var EmployeeStatuses = []string{"active", "on-leave", "suspended", "terminated"}

type Employee struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FirstName   string              `bson:"firstName" json:"firstName"`
	LastName    string              `bson:"lastName" json:"lastName"`
	StaffNumber string              `bson:"staffNumber" json:"staffNumber"`
	Email       string              `bson:"email" json:"email"`
	PhoneNumber string              `bson:"phoneNumber" json:"phoneNumber"`
	Position    string              `bson:"position,omitempty" json:"position,omitempty"`
	Department  *primitive.ObjectID `bson:"department,omitempty" json:"department,omitempty"`
	Status      string              `bson:"status" json:"status"`
	Photo       string              `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// DriverRef is the projection embedded when a vehicle's assigned driver
// is resolved. Only display fields, never the full employee record.
type DriverRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	StaffNumber string             `bson:"staffNumber" json:"staffNumber"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
}
