package users

import "go.mongodb.org/mongo-driver/bson"

// Minimum lengths enforced on stored user documents.
const (
	MinNameLength     = 2
	MinEmailLength    = 5
	MinPasswordLength = 8
)

// Fields lists the document fields a user may carry besides _id.
var Fields = []string{"name", "email", "password"}

// Validator returns the $jsonSchema validator attached to the users collection.
// Extra fields are rejected; only _id and Fields are allowed.
func Validator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             Fields,
			"additionalProperties": false,
			"properties": bson.M{
				"_id": bson.M{},
				"name": bson.M{
					"bsonType":    "string",
					"description": "'name' is required and is a string",
					"minLength":   MinNameLength,
				},
				"email": bson.M{
					"bsonType":    "string",
					"description": "'email' is required and is a string",
					"minLength":   MinEmailLength,
				},
				"password": bson.M{
					"bsonType":    "string",
					"description": "'password' is required and is a string",
					"minLength":   MinPasswordLength,
				},
			},
		},
	}
}
