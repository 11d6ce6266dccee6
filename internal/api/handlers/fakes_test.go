package handlers

import (
	"context"
	"io"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
)

// fakeVehicles keeps documents in memory but runs the same constraint
// table and normalization as the Mongo store, so handler tests exercise
// the real write semantics.
type fakeVehicles struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]bson.M
}

func newFakeVehicles() *fakeVehicles {
	return &fakeVehicles{docs: map[primitive.ObjectID]bson.M{}}
}

func (f *fakeVehicles) Create(_ context.Context, doc bson.M) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rules := store.VehicleRules()
	if err := rules.Validate(doc, false); err != nil {
		return nil, err
	}
	rules.Normalize(doc)

	for _, field := range store.VehicleUniqueFields {
		value, ok := doc[field].(string)
		if !ok || value == "" {
			continue
		}
		for _, existing := range f.docs {
			if existing[field] == value {
				return nil, &store.DuplicateKeyError{Field: field, Value: value}
			}
		}
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

	oid := primitive.NewObjectID()
	doc["_id"] = oid
	f.docs[oid] = doc
	return decodeVehicle(doc)
}

func (f *fakeVehicles) FindByID(_ context.Context, id string) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	return decodeVehicle(doc)
}

func (f *fakeVehicles) FindAll(_ context.Context, filter bson.M) ([]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	vehicles := []models.Vehicle{}
	for _, doc := range f.docs {
		if !matches(doc, filter) {
			continue
		}
		v, err := decodeVehicle(doc)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, nil
}

func (f *fakeVehicles) UpdateByID(_ context.Context, id string, changes bson.M) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	rules := store.VehicleRules()
	if err := rules.Validate(changes, true); err != nil {
		return nil, err
	}
	rules.Normalize(changes)

	for k, v := range changes {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
	return decodeVehicle(doc)
}

func (f *fakeVehicles) DeleteByID(_ context.Context, id string) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	v, err := decodeVehicle(doc)
	if err != nil {
		return nil, err
	}
	delete(f.docs, doc["_id"].(primitive.ObjectID))
	return v, nil
}

func (f *fakeVehicles) lookup(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	doc, ok := f.docs[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func decodeVehicle(doc bson.M) (*models.Vehicle, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v models.Vehicle
	if err := bson.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// fakeEmployees serves driver lookups for the resolver.
type fakeEmployees struct {
	employees map[string]models.Employee
}

func (f *fakeEmployees) FindByID(_ context.Context, id string) (*models.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

type fakeDepartments struct {
	departments map[string]models.Department
}

func (f *fakeDepartments) FindByID(_ context.Context, id string) (*models.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

type fakeBrands struct{}

func (f *fakeBrands) FindByID(_ context.Context, _ string) (*models.Brand, error) {
	return nil, store.ErrNotFound
}

type fakeInsurances struct{}

func (f *fakeInsurances) FindByID(_ context.Context, _ string) (*models.Insurance, error) {
	return nil, store.ErrNotFound
}

type fakeRoadWorths struct{}

func (f *fakeRoadWorths) FindByID(_ context.Context, _ string) (*models.RoadWorth, error) {
	return nil, store.ErrNotFound
}

// memoryStorage records saved and removed references.
type memoryStorage struct {
	saved   map[string][]byte
	removed []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{saved: map[string][]byte{}}
}

func (m *memoryStorage) Save(_ context.Context, relPath string, r io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saved[relPath] = data
	return relPath, nil
}

func (m *memoryStorage) Remove(_ context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	delete(m.saved, ref)
	return nil
}
