package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NextOfKin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Employee     primitive.ObjectID `bson:"employee" json:"employee"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Relationship string             `bson:"relationship" json:"relationship"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
