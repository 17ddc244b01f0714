package router

import (
	"log"

	"github.com/Soumya-Xd/CreativeShowcase/internal/handlers"
	"github.com/Soumya-Xd/CreativeShowcase/internal/middleware"
	"github.com/Soumya-Xd/CreativeShowcase/internal/repositories"
	"github.com/Soumya-Xd/CreativeShowcase/internal/uploads"
	"github.com/Soumya-Xd/CreativeShowcase/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, cfg *config.Config) {
	// --- Initialize repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	artworkRepo := repositories.NewMongoArtworkRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	followRepo := repositories.NewMongoFollowRepository(db)

	store := uploads.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Health check - always accessible
	e.GET("/api/health", handlers.HealthCheck)

	// Uploaded images are served statically.
	e.Static("/uploads", store.Dir())

	// --- Auth routes ---
	authHandler := handlers.NewAuthHandler(userRepo, artworkRepo, followRepo, likeRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"), requireAuth)
	log.Println("Auth routes configured.")

	// --- Artwork routes ---
	artworkHandler := handlers.NewArtworkHandler(artworkRepo, userRepo, likeRepo, followRepo, store)
	artworkHandler.RegisterArtworkRoutes(e.Group("/api/artworks"), requireAuth, optionalAuth)
	log.Println("Artwork routes configured.")

	// --- User routes ---
	userHandler := handlers.NewUserHandler(userRepo, artworkRepo, followRepo, likeRepo)
	userHandler.RegisterUserRoutes(e.Group("/api/users"), requireAuth, optionalAuth)
	log.Println("User routes configured.")

	log.Println("All routes configured.")
}
