package repositories

import (
	"context"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArtworkRepository defines the interface for artwork data operations
type ArtworkRepository interface {
	CreateArtwork(ctx context.Context, artwork *models.Artwork) error
	GetArtworkByID(ctx context.Context, id primitive.ObjectID) (*models.Artwork, error)
	GetArtworks(ctx context.Context, skip, limit int64) ([]models.Artwork, error)
	GetArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) ([]models.Artwork, error)
	ArtworkIDsByArtist(ctx context.Context, artistID primitive.ObjectID) ([]primitive.ObjectID, error)
	CountArtworks(ctx context.Context) (int64, error)
	CountArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) (int64, error)
	UpdateArtwork(ctx context.Context, artwork *models.Artwork) error
	DeleteArtwork(ctx context.Context, id primitive.ObjectID) error
}

// MongoArtworkRepository implements ArtworkRepository for MongoDB
type MongoArtworkRepository struct {
	collection *mongo.Collection
}

// NewMongoArtworkRepository creates a new MongoArtworkRepository
func NewMongoArtworkRepository(db *mongo.Database) *MongoArtworkRepository {
	return &MongoArtworkRepository{collection: db.Collection("artworks")}
}

// CreateArtwork inserts a new artwork.
func (r *MongoArtworkRepository) CreateArtwork(ctx context.Context, artwork *models.Artwork) error {
	artwork.ID = primitive.NewObjectID()
	artwork.CreatedAt = time.Now()
	artwork.UpdatedAt = artwork.CreatedAt
	if artwork.Tags == nil {
		artwork.Tags = []string{}
	}
	_, err := r.collection.InsertOne(ctx, artwork)
	return err
}

// GetArtworkByID retrieves an artwork by ObjectID.
func (r *MongoArtworkRepository) GetArtworkByID(ctx context.Context, id primitive.ObjectID) (*models.Artwork, error) {
	var artwork models.Artwork
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&artwork)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artwork, nil
}

// GetArtworks retrieves a page of artworks, newest first. Ordering is
// stable across requests so pagination windows do not shift.
func (r *MongoArtworkRepository) GetArtworks(ctx context.Context, skip, limit int64) ([]models.Artwork, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.D{}, findOptions)
}

// GetArtworksByArtist retrieves all artworks by one artist, newest first.
func (r *MongoArtworkRepository) GetArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) ([]models.Artwork, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.D{{Key: "artist", Value: artistID}}, findOptions)
}

// ArtworkIDsByArtist returns just the IDs of an artist's artworks, used
// to derive the total like count on profiles.
func (r *MongoArtworkRepository) ArtworkIDsByArtist(ctx context.Context, artistID primitive.ObjectID) ([]primitive.ObjectID, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"artist": artistID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// CountArtworks returns the total number of artworks.
func (r *MongoArtworkRepository) CountArtworks(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// CountArtworksByArtist returns the number of artworks owned by one artist.
func (r *MongoArtworkRepository) CountArtworksByArtist(ctx context.Context, artistID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"artist": artistID})
}

// UpdateArtwork updates the editable fields of an existing artwork.
func (r *MongoArtworkRepository) UpdateArtwork(ctx context.Context, artwork *models.Artwork) error {
	artwork.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       artwork.Title,
			"description": artwork.Description,
			"tags":        artwork.Tags,
			"updated_at":  artwork.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": artwork.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArtwork deletes an artwork by ObjectID.
func (r *MongoArtworkRepository) DeleteArtwork(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoArtworkRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Artwork, error) {
	artworks := []models.Artwork{}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &artworks); err != nil {
		return nil, err
	}
	return artworks, nil
}
