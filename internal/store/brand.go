package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-api-server/internal/models"
)

type Brands interface {
	Create(ctx context.Context, b models.Brand) (*models.Brand, error)
	FindByID(ctx context.Context, id string) (*models.Brand, error)
	FindByName(ctx context.Context, name string) (*models.Brand, error)
	FindAll(ctx context.Context) ([]models.Brand, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Brand, error)
	DeleteByID(ctx context.Context, id string) (*models.Brand, error)
}

type MongoBrands struct {
	Collection *mongo.Collection
}

func NewMongoBrands(db *mongo.Database) *MongoBrands {
	return &MongoBrands{Collection: db.Collection("brands")}
}

func (s *MongoBrands) Create(ctx context.Context, b models.Brand) (*models.Brand, error) {
	b.Name = strings.ToLower(b.Name)
	count, err := s.Collection.CountDocuments(ctx, bson.M{"name": b.Name})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DuplicateKeyError{Field: "name", Value: b.Name}
	}

	if b.Models == nil {
		b.Models = []string{}
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	res, err := s.Collection.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return &b, nil
}

func (s *MongoBrands) FindByID(ctx context.Context, id string) (*models.Brand, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var b models.Brand
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoBrands) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	var b models.Brand
	err := s.Collection.FindOne(ctx, bson.M{"name": strings.ToLower(name)}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoBrands) FindAll(ctx context.Context) ([]models.Brand, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	return brands, nil
}

func (s *MongoBrands) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Brand, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if name, ok := changes["name"].(string); ok && name != "" {
		name = strings.ToLower(name)
		changes["name"] = name
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
	var b models.Brand
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoBrands) DeleteByID(ctx context.Context, id string) (*models.Brand, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var b models.Brand
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
