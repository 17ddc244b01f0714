package middleware

import (
	"net/http"
	"strings"

	"github.com/Soumya-Xd/CreativeShowcase/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userIDKey is the echo context key under which the authenticated user's
// ObjectID is stored.
const userIDKey = "userID"

// RequireAuth aborts the request with 401 when the bearer token is
// missing, malformed, expired, or signed with the wrong key.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := identify(c, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// OptionalAuth resolves a missing or invalid bearer token to an anonymous
// identity and lets the request proceed.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, err := identify(c, jwtSecret); err == nil {
				c.Set(userIDKey, userID)
			}
			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user's ID, or ok=false for
// anonymous requests.
func UserIDFromContext(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get(userIDKey).(primitive.ObjectID)
	return id, ok
}

func identify(c echo.Context, jwtSecret string) (primitive.ObjectID, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token.")
	}
	return userID, nil
}
