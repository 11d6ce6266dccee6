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

type Insurances interface {
	Create(ctx context.Context, i models.Insurance) (*models.Insurance, error)
	FindByID(ctx context.Context, id string) (*models.Insurance, error)
	FindAll(ctx context.Context) ([]models.Insurance, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Insurance, error)
	DeleteByID(ctx context.Context, id string) (*models.Insurance, error)
}

type MongoInsurances struct {
	Collection *mongo.Collection
}

func NewMongoInsurances(db *mongo.Database) *MongoInsurances {
	return &MongoInsurances{Collection: db.Collection("insurances")}
}

func (s *MongoInsurances) Create(ctx context.Context, i models.Insurance) (*models.Insurance, error) {
	i.PolicyNumber = strings.ToLower(i.PolicyNumber)
	count, err := s.Collection.CountDocuments(ctx, bson.M{"policyNumber": i.PolicyNumber})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &DuplicateKeyError{Field: "policyNumber", Value: i.PolicyNumber}
	}

	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	res, err := s.Collection.InsertOne(ctx, i)
	if err != nil {
		return nil, err
	}
	i.ID = res.InsertedID.(primitive.ObjectID)
	return &i, nil
}

func (s *MongoInsurances) FindByID(ctx context.Context, id string) (*models.Insurance, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var i models.Insurance
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&i)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *MongoInsurances) FindAll(ctx context.Context) ([]models.Insurance, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var policies []models.Insurance
	if err := cursor.All(ctx, &policies); err != nil {
		return nil, err
	}
	if policies == nil {
		policies = []models.Insurance{}
	}
	return policies, nil
}

func (s *MongoInsurances) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Insurance, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if policy, ok := changes["policyNumber"].(string); ok && policy != "" {
		policy = strings.ToLower(policy)
		changes["policyNumber"] = policy
		count, err := s.Collection.CountDocuments(ctx, bson.M{"policyNumber": policy, "_id": bson.M{"$ne": oid}})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateKeyError{Field: "policyNumber", Value: policy}
		}
	}
	changes["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var i models.Insurance
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&i)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *MongoInsurances) DeleteByID(ctx context.Context, id string) (*models.Insurance, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var i models.Insurance
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&i)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}
