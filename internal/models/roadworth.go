package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoadWorth is a roadworthiness (technical inspection) certificate.
type RoadWorth struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CertificateNumber string             `bson:"certificateNumber" json:"certificateNumber"`
	TestCenter        string             `bson:"testCenter,omitempty" json:"testCenter,omitempty"`
	IssueDate         *time.Time         `bson:"issueDate,omitempty" json:"issueDate,omitempty"`
	ExpiryDate        *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type RoadWorthRef struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	CertificateNumber string             `bson:"certificateNumber" json:"certificateNumber"`
	ExpiryDate        *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
}
