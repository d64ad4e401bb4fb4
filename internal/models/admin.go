package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin struct matches the document in MongoDB.
// Password luôn là bcrypt hash, không bao giờ là plaintext.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
}
