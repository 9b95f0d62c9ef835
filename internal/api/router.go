package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/soundstash/media-catalog/docs"
	"github.com/soundstash/media-catalog/internal/api/handler"
	"github.com/soundstash/media-catalog/internal/api/middleware"
	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
	"github.com/soundstash/media-catalog/internal/core/service"
	mongodb "github.com/soundstash/media-catalog/internal/infrastructure/db/mongo"
)

// Deps carries the externally constructed collaborators the router wires
// into handlers.
type Deps struct {
	DB       *mongo.Database
	Redis    *redis.Client // nil disables revocation
	Tokens   ports.TokenService
	Denylist ports.TokenDenylist // nil disables revocation
	Media    ports.MediaStore
	Purger   ports.MediaPurger
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(d.DB)
	songRepo := mongodb.NewSongRepository(d.DB)
	albumRepo := mongodb.NewAlbumRepository(d.DB)
	playlistRepo := mongodb.NewPlaylistRepository(d.DB)

	authService := service.NewAuthService(userRepo, d.Tokens)
	catalogService := service.NewCatalogService(songRepo, albumRepo, playlistRepo, d.Media, d.Purger, d.Logger)

	authHandler := handler.NewAuthHandler(authService, d.Denylist)
	songHandler := handler.NewSongHandler(catalogService)
	albumHandler := handler.NewAlbumHandler(catalogService)
	playlistHandler := handler.NewPlaylistHandler(catalogService)
	mediaHandler := handler.NewMediaHandler(d.Media)

	authed := middleware.Auth(d.Tokens, d.Denylist)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authed)
	auth.POST("/revoke", authHandler.Revoke, authed, adminOnly)

	// --- Song routes ---
	song := e.Group("/api/song")
	song.POST("/add", songHandler.Add, authed, adminOnly)
	song.GET("/list", songHandler.List)
	song.POST("/remove", songHandler.Remove, authed, adminOnly)

	// --- Album routes ---
	album := e.Group("/api/album")
	album.POST("/add", albumHandler.Add, authed, adminOnly)
	album.GET("/list", albumHandler.List)
	album.POST("/remove", albumHandler.Remove, authed, adminOnly)

	// --- Playlist routes (authenticated; ownership enforced in service) ---
	playlist := e.Group("/api/playlist", authed)
	playlist.POST("/create", playlistHandler.Create)
	playlist.GET("/list", playlistHandler.List)
	playlist.POST("/add-song", playlistHandler.AddSong)
	playlist.POST("/remove", playlistHandler.Remove)

	// --- Media streaming (public) ---
	e.GET("/api/media/:key", mediaHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/api/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/api/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?

	// --- Ops surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
