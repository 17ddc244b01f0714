package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Soumya-Xd/CreativeShowcase/internal/middleware"
	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles public profiles, the follow toggle and profile edits.
type UserHandler struct {
	userRepository    repositories.UserRepository
	artworkRepository repositories.ArtworkRepository
	followRepository  repositories.FollowRepository
	likeRepository    repositories.LikeRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	artworkRepo repositories.ArtworkRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		artworkRepository: artworkRepo,
		followRepository:  followRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterUserRoutes registers user and social-graph routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireAuth, optionalAuth echo.MiddlewareFunc) {
	g.GET("/profile/:username", h.GetProfile, optionalAuth)
	g.POST("/:userId/follow", h.ToggleFollow, requireAuth)
	g.PUT("/profile", h.UpdateProfile, requireAuth)
	g.GET("/followers", h.GetFollowers, requireAuth)
	g.GET("/following", h.GetFollowing, requireAuth)
}

// GetProfile returns a public profile with stats and, for authenticated
// callers, whether they follow the profiled user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	stats, err := collectUserStats(ctx, user.ID, h.artworkRepository, h.followRepository, h.likeRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	isFollowing := false
	if viewerID, ok := middleware.UserIDFromContext(c); ok {
		if isFollowing, err = h.followRepository.IsFollowing(ctx, viewerID, user.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
	}

	createdAt := user.CreatedAt
	return c.JSON(http.StatusOK, echo.Map{
		"user": models.ProfileView{
			PublicUser:  user.ToPublic(),
			UserStats:   stats,
			CreatedAt:   &createdAt,
			IsFollowing: &isFollowing,
		},
	})
}

// ToggleFollow flips the follow edge from the caller to the target user.
// The unique (follower, followee) index resolves concurrent toggles the
// same way the like toggle does.
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	currentUserID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if targetID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if _, err := h.userRepository.GetUserByID(ctx, currentUserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	isFollowing, err := h.followRepository.IsFollowing(ctx, currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if isFollowing {
		if err := h.followRepository.DeleteFollow(ctx, currentUserID, targetID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
		return c.JSON(http.StatusOK, echo.Map{"following": false})
	}

	follow := &models.Follow{FollowerID: currentUserID, FolloweeID: targetID}
	if err := h.followRepository.CreateFollow(ctx, follow); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UpdateProfile edits the caller's username, bio or avatar.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if req.Username != "" && req.Username != user.Username {
		if other, err := h.userRepository.GetUserByUsername(ctx, req.Username); err == nil && other.ID != userID {
			return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
		}
		user.Username = req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	stats, err := collectUserStats(ctx, user.ID, h.artworkRepository, h.followRepository, h.likeRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": models.ProfileView{
			PublicUser: user.ToPublic(),
			UserStats:  stats,
		},
	})
}

// GetFollowers returns the caller's followers as resolved user summaries.
func (h *UserHandler) GetFollowers(c echo.Context) error {
	summaries, err := h.edgeUsers(c, h.followRepository.GetFollowerIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": summaries})
}

// GetFollowing returns the users the caller follows as resolved summaries.
func (h *UserHandler) GetFollowing(c echo.Context) error {
	summaries, err := h.edgeUsers(c, h.followRepository.GetFollowingIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"following": summaries})
}

func (h *UserHandler) edgeUsers(
	c echo.Context,
	edgeIDs func(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error),
) ([]models.PublicUser, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	ids, err := edgeIDs(ctx, userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	users, err := h.userRepository.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	summaries := make([]models.PublicUser, len(users))
	for i, u := range users {
		summaries[i] = u.ToPublic()
	}
	return summaries, nil
}
