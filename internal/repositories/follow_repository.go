package repositories

import (
	"context"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for social-graph edge operations.
// Each edge is a single document, so a follow or unfollow is one write and
// both directions of the relationship are always consistent.
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) error
	IsFollowing(ctx context.Context, followerID, followeeID primitive.ObjectID) (bool, error)
	GetFollowerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	GetFollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// CreateFollow inserts an edge, returning ErrDuplicate when it already exists.
func (r *MongoFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, follow)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteFollow removes the follower→followee edge.
func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"follower": followerID, "followee": followeeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether the follower→followee edge exists.
func (r *MongoFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower": followerID, "followee": followeeID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowerIDs returns the IDs of users following userID.
func (r *MongoFollowRepository) GetFollowerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.edgeIDs(ctx, bson.M{"followee": userID}, "follower")
}

// GetFollowingIDs returns the IDs of users userID follows.
func (r *MongoFollowRepository) GetFollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.edgeIDs(ctx, bson.M{"follower": userID}, "followee")
}

// CountFollowers returns the number of users following userID.
func (r *MongoFollowRepository) CountFollowers(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"followee": userID})
}

// CountFollowing returns the number of users userID follows.
func (r *MongoFollowRepository) CountFollowing(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"follower": userID})
}

func (r *MongoFollowRepository) edgeIDs(ctx context.Context, filter bson.M, side string) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []models.Follow
	if err = cursor.All(ctx, &edges); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(edges))
	for i, e := range edges {
		if side == "follower" {
			ids[i] = e.FollowerID
		} else {
			ids[i] = e.FolloweeID
		}
	}
	return ids, nil
}
