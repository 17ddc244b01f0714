package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account stored in MongoDB.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	AvatarURL string             `json:"avatar_url" bson:"avatar_url"`
	Bio       string             `json:"bio" bson:"bio"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"-" bson:"updated_at"`
}

// PublicUser is the user shape returned by auth responses and embedded
// in follower/following lists.
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// ToPublic converts a User to its public view.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
	}
}

// UserStats holds the derived counters shown on profiles. All four are
// computed by query, never stored.
type UserStats struct {
	ArtworkCount   int64 `json:"artworkCount"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
	TotalLikes     int64 `json:"totalLikes"`
}

// ProfileView is a public user plus derived stats, returned by /auth/me
// and the profile endpoints.
type ProfileView struct {
	PublicUser
	UserStats
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	IsFollowing *bool      `json:"isFollowing,omitempty"`
}

// RegisterRequest defines the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile edits.
// Bio and AvatarURL are pointers so an explicit empty string clears the field.
type UpdateProfileRequest struct {
	Username  string  `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
