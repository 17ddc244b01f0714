package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Soumya-Xd/CreativeShowcase/internal/middleware"
	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the original deployment was
// provisioned for; lowering it would weaken every stored hash.
const bcryptCost = 12

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	userRepository    repositories.UserRepository
	artworkRepository repositories.ArtworkRepository
	followRepository  repositories.FollowRepository
	likeRepository    repositories.LikeRepository
	jwtSecret         string
	jwtTTL            time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo repositories.UserRepository,
	artworkRepo repositories.ArtworkRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	jwtSecret string,
	jwtTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userRepository:    userRepo,
		artworkRepository: artworkRepo,
		followRepository:  followRepo,
		likeRepository:    likeRepo,
		jwtSecret:         jwtSecret,
		jwtTTL:            jwtTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, requireAuth)
}

// Register handles user registration and issues a token for the new account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if _, err := h.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
	}
	if _, err := h.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		// The unique indexes catch registrations racing past the checks above.
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email or username already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"token": token,
		"user":  user.ToPublic(),
	})
}

// Login authenticates email/password credentials and issues a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Unknown email and wrong password are deliberately indistinguishable.
	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user.ToPublic(),
	})
}

// Me returns the authenticated user's profile with derived stats.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID)
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

	return c.JSON(http.StatusOK, echo.Map{
		"user": models.ProfileView{
			PublicUser: user.ToPublic(),
			UserStats:  stats,
		},
	})
}

// generateJWT signs a token bound to the user's identity.
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
