package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/meanstack/userapi/internal/users"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser() *users.User {
	return &users.User{Name: "Ada", Email: "ada@example.com", Password: "correcthorse"}
}

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	u := newUser()
	res, err := r.Create(ctx, u)
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	require.False(t, res.ID.IsZero())
	id := res.ID.Hex()

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, users.User{ID: res.ID, Name: "Ada", Email: "ada@example.com", Password: "correcthorse"}, *got)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	out, err := r.Update(ctx, id, users.Changes{"name": "Ada L."})
	require.NoError(t, err)
	require.Equal(t, users.UpdateModified, out)

	out, err = r.Update(ctx, id, users.Changes{"name": "Ada L."})
	require.NoError(t, err)
	require.Equal(t, users.UpdateUnchanged, out)

	got, err = r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Ada L.", got.Name)

	del, err := r.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, users.DeleteDeleted, del)

	del, err = r.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, users.DeleteNotFound, del)

	got, err = r.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryRepoListKeepsInsertionOrder(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	names := []string{"first", "second", "third"}
	for _, n := range names {
		_, err := r.Create(ctx, &users.User{Name: n, Email: n + "@example.com", Password: "password1"})
		require.NoError(t, err)
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, n := range names {
		require.Equal(t, n, list[i].Name)
	}
}

func TestMemoryRepoCreateValidation(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	cases := map[string]users.User{
		"missing email":  {Name: "Ada", Password: "correcthorse"},
		"short name":     {Name: "A", Email: "ada@example.com", Password: "correcthorse"},
		"short email":    {Name: "Ada", Email: "a@b", Password: "correcthorse"},
		"short password": {Name: "Ada", Email: "ada@example.com", Password: "short"},
	}
	for name, u := range cases {
		u := u
		t.Run(name, func(t *testing.T) {
			_, err := r.Create(ctx, &u)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestMemoryRepoUpdateValidation(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	res, err := r.Create(ctx, newUser())
	require.NoError(t, err)
	id := res.ID.Hex()

	cases := map[string]users.Changes{
		"extra field":     {"age": "42"},
		"immutable id":    {"_id": "abc"},
		"non-string":      {"name": 42.0},
		"violates length": {"password": "short"},
	}
	for name, ch := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := r.Update(ctx, id, ch)
			require.ErrorIs(t, err, ErrValidation)
			require.Equal(t, users.UpdateNoResult, out)
		})
	}

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, *newUser(), users.User{Name: got.Name, Email: got.Email, Password: got.Password})
}

func TestMemoryRepoEmptyChangesMatchWithoutModifying(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	res, err := r.Create(ctx, newUser())
	require.NoError(t, err)

	out, err := r.Update(ctx, res.ID.Hex(), users.Changes{})
	require.NoError(t, err)
	require.Equal(t, users.UpdateUnchanged, out)

	out, err = r.Update(ctx, primitive.NewObjectID().Hex(), users.Changes{})
	require.NoError(t, err)
	require.Equal(t, users.UpdateNotMatched, out)
}

func TestMemoryRepoUnknownAndMalformedIDs(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	unknown := primitive.NewObjectID().Hex()

	got, err := r.Get(ctx, unknown)
	require.NoError(t, err)
	require.Nil(t, got)

	out, err := r.Update(ctx, unknown, users.Changes{"name": "Bob"})
	require.NoError(t, err)
	require.Equal(t, users.UpdateNotMatched, out)

	del, err := r.Delete(ctx, unknown)
	require.NoError(t, err)
	require.Equal(t, users.DeleteNotFound, del)

	_, err = r.Get(ctx, "not-an-id")
	require.ErrorIs(t, err, ErrInvalidID)
	_, err = r.Update(ctx, "not-an-id", users.Changes{"name": "Bob"})
	require.ErrorIs(t, err, ErrInvalidID)
	_, err = r.Delete(ctx, "not-an-id")
	require.ErrorIs(t, err, ErrInvalidID)
}
