package repository

import (
	"context"
	"testing"

	"github.com/meanstack/userapi/internal/users"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A repository built before bootstrap completed must never panic.
func TestMongoRepo_NilCollectionBehavesAsNoResult(t *testing.T) {
	ctx := context.Background()
	r := NewMongoRepo(nil)
	id := primitive.NewObjectID().Hex()

	require.ErrorIs(t, r.Ready(ctx), ErrNotReady)

	list, err := r.List(ctx)
	require.ErrorIs(t, err, ErrNotReady)
	require.Nil(t, list)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)

	res, err := r.Create(ctx, &users.User{Name: "Ada", Email: "ada@example.com", Password: "correcthorse"})
	require.NoError(t, err)
	require.False(t, res.Acknowledged)

	up, err := r.Update(ctx, id, users.Changes{"name": "Bob"})
	require.NoError(t, err)
	require.Equal(t, users.UpdateNoResult, up)

	del, err := r.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, users.DeleteNoResult, del)
}

func TestMongoRepo_MalformedIDIsCheckedFirst(t *testing.T) {
	ctx := context.Background()
	var r *MongoRepo

	_, err := r.Get(ctx, "123")
	require.ErrorIs(t, err, ErrInvalidID)

	up, err := r.Update(ctx, "zzzzzzzzzzzzzzzzzzzzzzzz", users.Changes{"name": "Bob"})
	require.ErrorIs(t, err, ErrInvalidID)
	require.Equal(t, users.UpdateNoResult, up)

	del, err := r.Delete(ctx, "")
	require.ErrorIs(t, err, ErrInvalidID)
	require.Equal(t, users.DeleteNoResult, del)
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := ParseID(oid.Hex())
	require.NoError(t, err)
	require.Equal(t, oid, got)

	_, err = ParseID("nope")
	require.ErrorIs(t, err, ErrInvalidID)
	require.Contains(t, err.Error(), `"nope"`)
}
