package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// CollectionName is the MongoDB collection holding user documents.
const CollectionName = "users"

// User is the only persisted entity. ID is assigned by the store on insert.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required,min=2"`
	Email    string             `bson:"email" json:"email" validate:"required,min=5"`
	Password string             `bson:"password" json:"password" validate:"required,min=8"`
}

// Changes is a partial document applied with $set on update.
// Keys are stored field names; values are passed through untouched.
type Changes map[string]interface{}

// InsertResult reports the outcome of a create.
type InsertResult struct {
	ID           primitive.ObjectID
	Acknowledged bool
}

// UpdateOutcome distinguishes the three ways an update can fail to modify data.
type UpdateOutcome int

const (
	UpdateNoResult UpdateOutcome = iota
	UpdateNotMatched
	UpdateUnchanged
	UpdateModified
)

func (o UpdateOutcome) String() string {
	switch o {
	case UpdateNotMatched:
		return "not_matched"
	case UpdateUnchanged:
		return "unchanged"
	case UpdateModified:
		return "modified"
	}
	return "no_result"
}

// DeleteOutcome reports whether a delete removed anything.
type DeleteOutcome int

const (
	DeleteNoResult DeleteOutcome = iota
	DeleteNotFound
	DeleteDeleted
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteNotFound:
		return "not_found"
	case DeleteDeleted:
		return "deleted"
	}
	return "no_result"
}
