package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Insurance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PolicyNumber string             `bson:"policyNumber" json:"policyNumber"`
	Provider     string             `bson:"provider" json:"provider"`
	StartDate    *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Cost         float64            `bson:"cost,omitempty" json:"cost,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type InsuranceRef struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	PolicyNumber string             `bson:"policyNumber" json:"policyNumber"`
	Provider     string             `bson:"provider" json:"provider"`
	EndDate      *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
}
