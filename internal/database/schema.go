package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// codeNamespaceNotFound is the server error code returned by collMod on a missing collection.
const codeNamespaceNotFound = 26

// EnsureValidator installs validator on the named collection, creating the collection
// when it does not exist yet. Re-running with the same validator is harmless.
func EnsureValidator(ctx context.Context, db *mongo.Database, collection string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: validator},
	}
	err := db.RunCommand(ctx, cmd).Err()
	if err == nil {
		return nil
	}
	if !IsNamespaceNotFound(err) {
		return fmt.Errorf("collMod %s: %w", collection, err)
	}
	if err := db.CreateCollection(ctx, collection, options.CreateCollection().SetValidator(validator)); err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}
	return nil
}

// IsNamespaceNotFound reports whether err is the server's NamespaceNotFound command error.
func IsNamespaceNotFound(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == codeNamespaceNotFound || ce.Name == "NamespaceNotFound"
	}
	return false
}
