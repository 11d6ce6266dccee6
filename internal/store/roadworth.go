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

type RoadWorths interface {
	Create(ctx context.Context, r models.RoadWorth) (*models.RoadWorth, error)
	FindByID(ctx context.Context, id string) (*models.RoadWorth, error)
	FindAll(ctx context.Context) ([]models.RoadWorth, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.RoadWorth, error)
	DeleteByID(ctx context.Context, id string) (*models.RoadWorth, error)
}

type MongoRoadWorths struct {
	Collection *mongo.Collection
}

func NewMongoRoadWorths(db *mongo.Database) *MongoRoadWorths {
	return &MongoRoadWorths{Collection: db.Collection("roadworths")}
}

func (s *MongoRoadWorths) Create(ctx context.Context, r models.RoadWorth) (*models.RoadWorth, error) {
	r.CertificateNumber = strings.ToLower(r.CertificateNumber)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	res, err := s.Collection.InsertOne(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return &r, nil
}

func (s *MongoRoadWorths) FindByID(ctx context.Context, id string) (*models.RoadWorth, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var r models.RoadWorth
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoRoadWorths) FindAll(ctx context.Context) ([]models.RoadWorth, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var certs []models.RoadWorth
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []models.RoadWorth{}
	}
	return certs, nil
}

func (s *MongoRoadWorths) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.RoadWorth, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if cert, ok := changes["certificateNumber"].(string); ok && cert != "" {
		changes["certificateNumber"] = strings.ToLower(cert)
	}
	changes["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.RoadWorth
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoRoadWorths) DeleteByID(ctx context.Context, id string) (*models.RoadWorth, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var r models.RoadWorth
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
