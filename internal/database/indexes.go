package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes behind the identification
// fields. The stores pre-check duplicates for friendlier errors; these
// indexes are the authoritative guard.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	vehicles := []mongo.IndexModel{
		{Keys: bson.D{{Key: "registrationNumber", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "vinNumber", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "plateNumber", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "assignedDriver", Value: 1}}},
	}
	if _, err := db.Collection("vehicles").Indexes().CreateMany(ctx, vehicles); err != nil {
		return err
	}

	employees := []mongo.IndexModel{
		{Keys: bson.D{{Key: "staffNumber", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	}
	if _, err := db.Collection("employees").Indexes().CreateMany(ctx, employees); err != nil {
		return err
	}

	for coll, field := range map[string]string{
		"departments": "name",
		"brands":      "name",
		"insurances":  "policyNumber",
	} {
		idx := mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: unique}
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
