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

type Departments interface {
	Create(ctx context.Context, d models.Department) (*models.Department, error)
	FindByID(ctx context.Context, id string) (*models.Department, error)
	FindAll(ctx context.Context) ([]models.Department, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Department, error)
	DeleteByID(ctx context.Context, id string) (*models.Department, error)
}

type MongoDepartments struct {
	Collection *mongo.Collection
}

func NewMongoDepartments(db *mongo.Database) *MongoDepartments {
	return &MongoDepartments{Collection: db.Collection("departments")}
}

func (s *MongoDepartments) Create(ctx context.Context, d models.Department) (*models.Department, error) {
	count, err := s.Collection.CountDocuments(ctx, bson.M{"name": d.Name})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DuplicateKeyError{Field: "name", Value: d.Name}
	}

	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	res, err := s.Collection.InsertOne(ctx, d)
	if err != nil {
		return nil, err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return &d, nil
}

func (s *MongoDepartments) FindByID(ctx context.Context, id string) (*models.Department, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var d models.Department
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoDepartments) FindAll(ctx context.Context) ([]models.Department, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var departments []models.Department
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []models.Department{}
	}
	return departments, nil
}

func (s *MongoDepartments) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Department, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if name, ok := changes["name"].(string); ok && name != "" {
		count, err := s.Collection.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oid}})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateKeyError{Field: "name", Value: name}
		}
	}
	changes["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Department
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoDepartments) DeleteByID(ctx context.Context, id string) (*models.Department, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var d models.Department
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
