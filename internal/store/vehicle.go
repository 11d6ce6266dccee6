package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-api-server/internal/models"
)

// Vehicles is the Resource Store contract for the vehicles collection.
// Documents are passed as bson.M so the constraint table can run over the
// exact fields a write touches.
type Vehicles interface {
	Create(ctx context.Context, doc bson.M) (*models.Vehicle, error)
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindAll(ctx context.Context, filter bson.M) ([]models.Vehicle, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Vehicle, error)
	DeleteByID(ctx context.Context, id string) (*models.Vehicle, error)
}

// MongoVehicles implements Vehicles on a Mongo collection.
type MongoVehicles struct {
	Collection *mongo.Collection
}

func NewMongoVehicles(db *mongo.Database) *MongoVehicles {
	return &MongoVehicles{Collection: db.Collection("vehicles")}
}

func (s *MongoVehicles) Create(ctx context.Context, doc bson.M) (*models.Vehicle, error) {
	rules := VehicleRules()
	if err := rules.Validate(doc, false); err != nil {
		return nil, err
	}
	rules.Normalize(doc)

	if err := s.checkUnique(ctx, doc, primitive.NilObjectID); err != nil {
		return nil, err
	}

	if _, ok := doc["status"]; !ok {
		doc["status"] = models.StatusActive
	}
	if _, ok := doc["isAvailableForPool"]; !ok {
		doc["isAvailableForPool"] = true
	}
	if _, ok := doc["pictures"]; !ok {
		doc["pictures"] = []string{}
	}
	now := time.Now()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := s.Collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	oid := res.InsertedID.(primitive.ObjectID)

	var v models.Vehicle
	if err := s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoVehicles) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var v models.Vehicle
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoVehicles) FindAll(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

func (s *MongoVehicles) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	rules := VehicleRules()
	if err := rules.Validate(changes, true); err != nil {
		return nil, err
	}
	rules.Normalize(changes)

	if err := s.checkUnique(ctx, changes, oid); err != nil {
		return nil, err
	}
	changes["updatedAt"] = time.Now()

	// Unsetting the driver is expressed by an explicit nil in changes.
	set := bson.M{}
	unset := bson.M{}
	for k, v := range changes {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v models.Vehicle
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoVehicles) DeleteByID(ctx context.Context, id string) (*models.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var v models.Vehicle
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// checkUnique rejects a write whose identification fields collide with
// another document. The unique indexes remain the backstop for races.
func (s *MongoVehicles) checkUnique(ctx context.Context, doc bson.M, exclude primitive.ObjectID) error {
	for _, field := range VehicleUniqueFields {
		value, ok := doc[field].(string)
		if !ok || value == "" {
			continue
		}
		filter := bson.M{field: value}
		if !exclude.IsZero() {
			filter["_id"] = bson.M{"$ne": exclude}
		}
		count, err := s.Collection.CountDocuments(ctx, filter)
		if err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateKeyError{Field: field, Value: value}
		}
	}
	return nil
}
