// Package server contains the HTTP handlers for the chirp API.
package server

import (
	"context"
	"fmt"
	"time"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/middleware"
	"chirp/internal/repository"
	"chirp/internal/service"
	"chirp/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus

	accountService *service.AccountService
	followService  *service.FollowService
	postService    *service.PostService
	likeService    *service.LikeService
	mediaService   *service.MediaService
}

// NewServer connects to the configured database and builds a Server on top of it.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	saver := storage.NewLocalSaver(cfg.MediaRoot, int64(cfg.MediaMaxUploadMB)<<20)
	return NewServerWithDeps(cfg, db, saver), nil
}

// NewServerWithDeps creates a Server using an already-initialized database
// and media saver. Schema setup and seeding are left to the caller.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, saver storage.Saver) *Server {
	accounts := repository.NewAccountRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("chirp-api"),
		accountService: service.NewAccountService(accounts),
		followService:  service.NewFollowService(repository.NewFollowRepository(db)),
		postService:    service.NewPostService(repository.NewPostRepository(db)),
		likeService:    service.NewLikeService(repository.NewLikeRepository(db)),
		mediaService:   service.NewMediaService(repository.NewMediaRepository(db), accounts, saver),
	}
}

// NewApp returns a Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := s.config.MediaMaxUploadMB << 20
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}
	// Leave room for the multipart envelope around the file itself.
	bodyLimit += 64 << 10

	app := fiber.New(fiber.Config{
		AppName:   "chirp",
		BodyLimit: bodyLimit,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing must run before ContextMiddleware so the trace id reaches the logger.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, api-key",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	if s.config.MediaRoot != "" {
		app.Static("/"+storage.LinkPrefix, s.config.MediaRoot)
	}

	api := app.Group("/api", middleware.Identity(s.config.JWTSecret))

	users := api.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Post("/:id/follow", s.FollowAccount)
	users.Delete("/:id/follow", s.UnfollowAccount)
	users.Get("/:id", s.GetProfile)

	tweets := api.Group("/tweets")
	tweets.Get("/", s.GetFeed)
	tweets.Post("/", s.CreatePost)
	tweets.Post("/:id/likes", s.LikePost)
	tweets.Delete("/:id/likes", s.UnlikePost)
	tweets.Delete("/:id", s.DeletePost)

	api.Post("/medias", s.UploadMedia)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "unhealthy",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"database": "healthy",
	})
}

// Shutdown releases the database pool.
func (s *Server) Shutdown(_ context.Context) error {
	return database.Close(s.db)
}
