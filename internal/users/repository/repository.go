package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/meanstack/userapi/internal/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidID is returned when an id is not a 24-character hex ObjectID.
	ErrInvalidID = errors.New("invalid user id")
	// ErrNotReady is returned when the backing collection was never initialised.
	ErrNotReady = errors.New("users collection is not ready")
	// ErrValidation is returned by the in-memory store when a document breaks the users schema.
	ErrValidation = errors.New("document failed validation")
)

// Repository is the persistence contract for users. Absent or partial results are
// reported through the outcome types in package users, never as errors.
type Repository interface {
	List(ctx context.Context) ([]users.User, error)
	// Get returns (nil, nil) when no document matches.
	Get(ctx context.Context, id string) (*users.User, error)
	Create(ctx context.Context, u *users.User) (users.InsertResult, error)
	Update(ctx context.Context, id string, changes users.Changes) (users.UpdateOutcome, error)
	Delete(ctx context.Context, id string) (users.DeleteOutcome, error)
	// Ready reports whether the store can serve requests.
	Ready(ctx context.Context) error
}

// ParseID converts a route id into the store's native identifier.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return oid, nil
}
