package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is a join record expressing one user's endorsement of one artwork.
// A unique compound index on (user, artwork) guarantees at most one per pair.
type Like struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	ArtworkID primitive.ObjectID `json:"artwork" bson:"artwork"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
