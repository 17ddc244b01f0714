package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Soumya-Xd/CreativeShowcase/internal/middleware"
	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"github.com/Soumya-Xd/CreativeShowcase/internal/uploads"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxTitleLen = 100

// ArtworkHandler handles artwork CRUD, the like toggle and gallery listings.
type ArtworkHandler struct {
	artworkRepository repositories.ArtworkRepository
	userRepository    repositories.UserRepository
	likeRepository    repositories.LikeRepository
	followRepository  repositories.FollowRepository
	store             *uploads.Store
}

// NewArtworkHandler creates a new ArtworkHandler
func NewArtworkHandler(
	artworkRepo repositories.ArtworkRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	followRepo repositories.FollowRepository,
	store *uploads.Store,
) *ArtworkHandler {
	return &ArtworkHandler{
		artworkRepository: artworkRepo,
		userRepository:    userRepo,
		likeRepository:    likeRepo,
		followRepository:  followRepo,
		store:             store,
	}
}

// RegisterArtworkRoutes registers artwork-related routes
func (h *ArtworkHandler) RegisterArtworkRoutes(g *echo.Group, requireAuth, optionalAuth echo.MiddlewareFunc) {
	g.GET("", h.ListArtworks, optionalAuth)
	g.GET("/user/:userId", h.GetUserArtworks, optionalAuth)
	g.GET("/:id", h.GetArtwork, optionalAuth)
	g.POST("", h.CreateArtwork, requireAuth)
	g.PUT("/:id", h.UpdateArtwork, requireAuth)
	g.DELETE("/:id", h.DeleteArtwork, requireAuth)
	g.POST("/:id/like", h.ToggleLike, requireAuth)
}

// ListArtworks returns one page of the public gallery, newest first.
func (h *ArtworkHandler) ListArtworks(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	skip := int64((page - 1) * limit)

	ctx := c.Request().Context()
	artworks, err := h.artworkRepository.GetArtworks(ctx, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	total, err := h.artworkRepository.CountArtworks(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	views, err := h.composeViews(c, artworks)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"artworks": views,
		"pagination": models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// GetArtwork returns a single artwork by ID.
func (h *ArtworkHandler) GetArtwork(c echo.Context) error {
	artwork, err := h.findArtwork(c)
	if err != nil {
		return err
	}

	view, err := h.composeView(c, *artwork)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"artwork": view})
}

// CreateArtwork accepts a multipart upload and creates the artwork record.
func (h *ArtworkHandler) CreateArtwork(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	file, err := c.FormFile("image")
	if err != nil || title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and image required")
	}
	if len(title) > maxTitleLen {
		return echo.NewHTTPError(http.StatusBadRequest, "Title too long")
	}

	filename, err := h.store.Save(file)
	if err != nil {
		if errors.Is(err, uploads.ErrFileType) || errors.Is(err, uploads.ErrTooLarge) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	artwork := &models.Artwork{
		Title:       title,
		Description: c.FormValue("description"),
		ImageURL:    h.store.URLPath(filename),
		ArtistID:    userID,
		Tags:        splitTags(c.FormValue("tags")),
	}

	ctx := c.Request().Context()
	if err := h.artworkRepository.CreateArtwork(ctx, artwork); err != nil {
		// Keep the upload dir consistent with the store.
		h.store.Remove(artwork.ImageURL)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	view, err := h.composeView(c, *artwork)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Artwork uploaded",
		"artwork": view,
	})
}

// UpdateArtwork edits title/description/tags. Only the owner may edit; a
// foreign or missing artwork is answered with the same 404.
func (h *ArtworkHandler) UpdateArtwork(c echo.Context) error {
	artwork, err := h.findOwnedArtwork(c)
	if err != nil {
		return err
	}

	var req models.UpdateArtworkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		artwork.Title = req.Title
	}
	if req.Description != nil {
		artwork.Description = *req.Description
	}
	if req.Tags != nil {
		artwork.Tags = splitTags(*req.Tags)
	}

	if err := h.artworkRepository.UpdateArtwork(c.Request().Context(), artwork); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	view, err := h.composeView(c, *artwork)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Artwork updated",
		"artwork": view,
	})
}

// DeleteArtwork removes the artwork, its likes and its backing file.
func (h *ArtworkHandler) DeleteArtwork(c echo.Context) error {
	artwork, err := h.findOwnedArtwork(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	// Missing files are ignored so a re-run after a partial failure
	// still converges.
	if err := h.store.Remove(artwork.ImageURL); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := h.likeRepository.DeleteLikesByArtwork(ctx, artwork.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if err := h.artworkRepository.DeleteArtwork(ctx, artwork.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not authorized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Artwork deleted"})
}

// ToggleLike flips the caller's like on an artwork. The unique
// (user, artwork) index resolves concurrent toggles: a duplicate insert
// means another request already liked, a missed delete means another
// request already unliked.
func (h *ArtworkHandler) ToggleLike(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	artwork, err := h.findArtwork(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	liked, err := h.likeRepository.HasUserLikedArtwork(ctx, userID, artwork.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	if liked {
		if err := h.likeRepository.DeleteLike(ctx, userID, artwork.ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}

	like := &models.Like{UserID: userID, ArtworkID: artwork.ID}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}

// GetUserArtworks returns all artworks by one user, newest first.
func (h *ArtworkHandler) GetUserArtworks(c echo.Context) error {
	artistID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	artworks, err := h.artworkRepository.GetArtworksByArtist(c.Request().Context(), artistID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	views, err := h.composeViews(c, artworks)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"artworks": views})
}

// findArtwork resolves the :id param to an artwork or a 404.
func (h *ArtworkHandler) findArtwork(c echo.Context) (*models.Artwork, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Artwork not found")
	}
	artwork, err := h.artworkRepository.GetArtworkByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Artwork not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return artwork, nil
}

// findOwnedArtwork is findArtwork plus the ownership check. Absent and
// foreign artworks get the same answer so ownership cannot be probed.
func (h *ArtworkHandler) findOwnedArtwork(c echo.Context) (*models.Artwork, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Not authorized")
	}
	artwork, err := h.artworkRepository.GetArtworkByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Not authorized")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	if artwork.ArtistID != userID {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Not authorized")
	}
	return artwork, nil
}

// composeView enriches one artwork with like data and the artist block
// for the requesting identity.
func (h *ArtworkHandler) composeView(c echo.Context, artwork models.Artwork) (models.ArtworkView, error) {
	views, err := h.composeViews(c, []models.Artwork{artwork})
	if err != nil {
		return models.ArtworkView{}, err
	}
	return views[0], nil
}

// composeViews enriches a batch of artworks. Artists are fetched once per
// batch; like counts and like/follow membership are one query per artwork,
// the accepted per-request cost of keeping them derivable.
func (h *ArtworkHandler) composeViews(c echo.Context, artworks []models.Artwork) ([]models.ArtworkView, error) {
	ctx := c.Request().Context()
	viewerID, hasViewer := middleware.UserIDFromContext(c)

	artistIDs := make([]primitive.ObjectID, 0, len(artworks))
	seen := make(map[primitive.ObjectID]bool)
	for _, a := range artworks {
		if !seen[a.ArtistID] {
			seen[a.ArtistID] = true
			artistIDs = append(artistIDs, a.ArtistID)
		}
	}

	artists, err := h.userRepository.GetUsersByIDs(ctx, artistIDs)
	if err != nil {
		return nil, err
	}
	artistMap := make(map[primitive.ObjectID]models.User, len(artists))
	for _, u := range artists {
		artistMap[u.ID] = u
	}

	views := make([]models.ArtworkView, len(artworks))
	for i, a := range artworks {
		likesCount, err := h.likeRepository.CountLikesByArtwork(ctx, a.ID)
		if err != nil {
			return nil, err
		}

		isLiked := false
		isFollowing := false
		if hasViewer {
			if isLiked, err = h.likeRepository.HasUserLikedArtwork(ctx, viewerID, a.ID); err != nil {
				return nil, err
			}
			if isFollowing, err = h.followRepository.IsFollowing(ctx, viewerID, a.ArtistID); err != nil {
				return nil, err
			}
		}

		artist := artistMap[a.ArtistID]
		views[i] = models.ArtworkView{
			Artwork:    a,
			LikesCount: likesCount,
			IsLiked:    isLiked,
			Artist: models.ArtistView{
				ID:          a.ArtistID.Hex(),
				Username:    artist.Username,
				Email:       artist.Email,
				AvatarURL:   artist.AvatarURL,
				Bio:         artist.Bio,
				IsFollowing: isFollowing,
			},
		}
	}
	return views, nil
}

// splitTags parses the comma-separated tags form field.
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
