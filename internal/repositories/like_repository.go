package repositories

import (
	"context"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository defines the interface for like data operations. The
// unique (user, artwork) index is the safety net against concurrent
// toggles producing duplicate likes; callers treat ErrDuplicate on insert
// as "already liked".
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, artworkID primitive.ObjectID) error
	HasUserLikedArtwork(ctx context.Context, userID, artworkID primitive.ObjectID) (bool, error)
	CountLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) (int64, error)
	CountLikesByArtworks(ctx context.Context, artworkIDs []primitive.ObjectID) (int64, error)
	DeleteLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike inserts a like, returning ErrDuplicate when the pair already exists.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteLike removes the like for the (user, artwork) pair.
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, userID, artworkID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": userID, "artwork": artworkID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// HasUserLikedArtwork reports whether the pair exists.
func (r *MongoLikeRepository) HasUserLikedArtwork(ctx context.Context, userID, artworkID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": userID, "artwork": artworkID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikesByArtwork returns the like count for one artwork.
func (r *MongoLikeRepository) CountLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"artwork": artworkID})
}

// CountLikesByArtworks returns the aggregate like count across artworks,
// used for the totalLikes profile stat.
func (r *MongoLikeRepository) CountLikesByArtworks(ctx context.Context, artworkIDs []primitive.ObjectID) (int64, error) {
	if len(artworkIDs) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"artwork": bson.M{"$in": artworkIDs}})
}

// DeleteLikesByArtwork removes every like referencing an artwork, part of
// the delete cascade.
func (r *MongoLikeRepository) DeleteLikesByArtwork(ctx context.Context, artworkID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"artwork": artworkID})
	return err
}
