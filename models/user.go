package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a minimal profile record.
// Collection: users
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Skill     string             `bson:"skill" json:"skill"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
