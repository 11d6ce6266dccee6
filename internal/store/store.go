package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectID parses a hex id from the URL; a malformed id behaves exactly
// like a missing document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
