package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/validation"
)

// employeeUniqueFields carry unique indexes on the employees collection.
var employeeUniqueFields = []string{"staffNumber", "email"}

// ValidateEmployeeStatus rejects a status outside the closed enumeration.
// The empty string passes; Create fills in the default.
func ValidateEmployeeStatus(status string) error {
	if status == "" {
		return nil
	}
	for _, s := range models.EmployeeStatuses {
		if s == status {
			return nil
		}
	}
	return &validation.Error{
		Field:  "status",
		Reason: fmt.Sprintf("%q is not one of [%s]", status, strings.Join(models.EmployeeStatuses, ", ")),
	}
}

type Employees interface {
	Create(ctx context.Context, e models.Employee) (*models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindAll(ctx context.Context, filter bson.M) ([]models.Employee, error)
	UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Employee, error)
	DeleteByID(ctx context.Context, id string) (*models.Employee, error)
}

type MongoEmployees struct {
	Collection *mongo.Collection
}

func NewMongoEmployees(db *mongo.Database) *MongoEmployees {
	return &MongoEmployees{Collection: db.Collection("employees")}
}

func (s *MongoEmployees) Create(ctx context.Context, e models.Employee) (*models.Employee, error) {
	e.StaffNumber = strings.ToLower(e.StaffNumber)
	e.Email = strings.ToLower(e.Email)
	e.Status = strings.ToLower(e.Status)
	if err := ValidateEmployeeStatus(e.Status); err != nil {
		return nil, err
	}

	for field, value := range map[string]string{"staffNumber": e.StaffNumber, "email": e.Email} {
		count, err := s.Collection.CountDocuments(ctx, bson.M{field: value})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateKeyError{Field: field, Value: value}
		}
	}

	if e.Status == "" {
		e.Status = "active"
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	res, err := s.Collection.InsertOne(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return &e, nil
}

func (s *MongoEmployees) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var e models.Employee
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *MongoEmployees) FindAll(ctx context.Context, filter bson.M) ([]models.Employee, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (s *MongoEmployees) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if status, ok := changes["status"].(string); ok {
		status = strings.ToLower(status)
		changes["status"] = status
		if err := ValidateEmployeeStatus(status); err != nil {
			return nil, err
		}
	}
	for _, field := range employeeUniqueFields {
		value, ok := changes[field].(string)
		if !ok || value == "" {
			continue
		}
		value = strings.ToLower(value)
		changes[field] = value
		count, err := s.Collection.CountDocuments(ctx, bson.M{field: value, "_id": bson.M{"$ne": oid}})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateKeyError{Field: field, Value: value}
		}
	}
	changes["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Employee
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": changes}, opts).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *MongoEmployees) DeleteByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var e models.Employee
	err = s.Collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
