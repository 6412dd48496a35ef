package repository

import (
	"context"
	"errors"

	"github.com/meanstack/userapi/internal/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo implements Repository on a MongoDB collection. The collection carries the
// users $jsonSchema validator, so shape checks happen server-side.
//
// A nil collection is tolerated: every call behaves as if the store returned no result.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) ready() bool {
	return m != nil && m.col != nil
}

func (m *MongoRepo) Ready(ctx context.Context) error {
	if !m.ready() {
		return ErrNotReady
	}
	return m.col.Database().Client().Ping(ctx, nil)
}

func (m *MongoRepo) List(ctx context.Context) ([]users.User, error) {
	if !m.ready() {
		return nil, ErrNotReady
	}
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []users.User{}
	for cur.Next(ctx) {
		var u users.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*users.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	if !m.ready() {
		return nil, nil
	}
	var u users.User
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (m *MongoRepo) Create(ctx context.Context, u *users.User) (users.InsertResult, error) {
	if !m.ready() {
		return users.InsertResult{}, nil
	}
	res, err := m.col.InsertOne(ctx, u)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return users.InsertResult{}, nil
	}
	if err != nil {
		return users.InsertResult{}, err
	}
	if res == nil {
		return users.InsertResult{}, nil
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	u.ID = oid
	return users.InsertResult{ID: oid, Acknowledged: true}, nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, changes users.Changes) (users.UpdateOutcome, error) {
	oid, err := ParseID(id)
	if err != nil {
		return users.UpdateNoResult, err
	}
	if !m.ready() {
		return users.UpdateNoResult, nil
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(changes)})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return users.UpdateNoResult, nil
	}
	if err != nil {
		return users.UpdateNoResult, err
	}
	switch {
	case res == nil:
		return users.UpdateNoResult, nil
	case res.MatchedCount == 0:
		return users.UpdateNotMatched, nil
	case res.ModifiedCount == 0:
		return users.UpdateUnchanged, nil
	}
	return users.UpdateModified, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) (users.DeleteOutcome, error) {
	oid, err := ParseID(id)
	if err != nil {
		return users.DeleteNoResult, err
	}
	if !m.ready() {
		return users.DeleteNoResult, nil
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return users.DeleteNoResult, nil
	}
	if err != nil {
		return users.DeleteNoResult, err
	}
	if res == nil {
		return users.DeleteNoResult, nil
	}
	if res.DeletedCount == 0 {
		return users.DeleteNotFound, nil
	}
	return users.DeleteDeleted, nil
}
