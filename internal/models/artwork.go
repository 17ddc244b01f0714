package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Artwork represents an uploaded image with metadata, stored in MongoDB.
// Like membership is not stored on the document; it is derived from the
// likes collection on every read.
type Artwork struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
	ArtistID    primitive.ObjectID `json:"-" bson:"artist"`
	Tags        []string           `json:"tags" bson:"tags"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ArtistView is the artist block embedded in artwork responses.
type ArtistView struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	IsFollowing bool   `json:"isFollowing"`
}

// ArtworkView is an artwork enriched with like counts and artist data
// for the requesting identity.
type ArtworkView struct {
	Artwork
	LikesCount int64      `json:"likes_count"`
	IsLiked    bool       `json:"is_liked"`
	Artist     ArtistView `json:"artist"`
}

// Pagination describes the window a listing response was produced from.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// UpdateArtworkRequest defines the request body for editing an artwork.
// Tags arrive as a comma-separated string, matching the upload form field.
type UpdateArtworkRequest struct {
	Title       string  `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Tags        *string `json:"tags,omitempty"`
}
