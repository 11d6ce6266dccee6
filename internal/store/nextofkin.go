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

type NextOfKins interface {
	Create(ctx context.Context, n models.NextOfKin) (*models.NextOfKin, error)
	FindByID(ctx context.Context, id string) (*models.NextOfKin, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]models.NextOfKin, error)
	FindAll(ctx context.Context) ([]models.NextOfKin, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.NextOfKin, error)
	DeleteByID(ctx context.Context, id string) (*models.NextOfKin, error)
}

type MongoNextOfKins struct {
	Collection *mongo.Collection
}

func NewMongoNextOfKins(db *mongo.Database) *MongoNextOfKins {
	return &MongoNextOfKins{Collection: db.Collection("nextofkins")}
}

func (s *MongoNextOfKins) Create(ctx context.Context, n models.NextOfKin) (*models.NextOfKin, error) {
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	res, err := s.Collection.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return &n, nil
}

func (s *MongoNextOfKins) FindByID(ctx context.Context, id string) (*models.NextOfKin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.NextOfKin
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *MongoNextOfKins) FindByEmployee(ctx context.Context, employeeID string) ([]models.NextOfKin, error) {
	oid, err := objectID(employeeID)
	if err != nil {
		return nil, err
	}
	cursor, err := s.Collection.Find(ctx, bson.M{"employee": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var kins []models.NextOfKin
	if err := cursor.All(ctx, &kins); err != nil {
		return nil, err
	}
	if kins == nil {
		kins = []models.NextOfKin{}
	}
	return kins, nil
}

func (s *MongoNextOfKins) FindAll(ctx context.Context) ([]models.NextOfKin, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var kins []models.NextOfKin
	if err := cursor.All(ctx, &kins); err != nil {
		return nil, err
	}
	if kins == nil {
		kins = []models.NextOfKin{}
	}
	return kins, nil
}

func (s *MongoNextOfKins) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.NextOfKin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	changes["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.NextOfKin
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *MongoNextOfKins) DeleteByID(ctx context.Context, id string) (*models.NextOfKin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var n models.NextOfKin
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
