package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge in the social graph. Membership lives only in
// the follows collection; follower/following lists and counts are derived
// by query, so there is no dual write to keep in sync. A unique compound
// index on (follower, followee) guarantees at most one edge per pair.
type Follow struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FollowerID primitive.ObjectID `json:"follower" bson:"follower"`
	FolloweeID primitive.ObjectID `json:"followee" bson:"followee"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
