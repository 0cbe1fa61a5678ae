// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"mindhaven/internal/blogs"
	"mindhaven/internal/cache"
	"mindhaven/internal/config"
	"mindhaven/internal/database"
	"mindhaven/internal/llm"
	"mindhaven/internal/middleware"
	"mindhaven/internal/models"
	"mindhaven/internal/moderation"
	"mindhaven/internal/repository"
	"mindhaven/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	scraper    *blogs.Scraper
	moderation moderation.Client

	userRepo repository.UserRepository

	chatService      *service.ChatService
	postService      *service.PostService
	commentService   *service.CommentService
	communityService *service.CommunityService
	voteService      *service.VoteService
	userService      *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.SeedCommunities(db); err != nil {
		return nil, fmt.Errorf("seed communities: %w", err)
	}
	if cfg.SeedDemoData && cfg.Env != "production" {
		if err := database.SeedDemoData(db); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	chatRepo := repository.NewChatRepository(db)

	moderationClient := moderation.NewHuggingFaceClient(cfg.HuggingFaceAPIKey, cfg.HuggingFaceURL)
	gate := moderation.NewGate(moderationClient)
	llmClient := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	prom := middleware.InitMetrics("mindhaven-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		scraper:        blogs.NewScraper(cfg.BlogBaseURL),
		moderation:     moderationClient,
		userRepo:       userRepo,
	}

	server.chatService = service.NewChatService(chatRepo, llmClient)
	server.postService = service.NewPostService(postRepo, voteRepo, gate)
	server.commentService = service.NewCommentService(commentRepo, postRepo, voteRepo, gate)
	server.communityService = service.NewCommunityService(communityRepo)
	server.voteService = service.NewVoteService(voteRepo, postRepo, commentRepo)
	server.userService = service.NewUserService(userRepo, cfg.JWTSecret)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Companion chat routes
	ai := api.Group("/ai")
	ai.Get("/chats", s.GetChats)
	ai.Post("/chats", s.CreateChat)
	ai.Get("/chats/:id/messages", s.GetChatMessages)
	ai.Delete("/chats/:id", s.DeleteChat)
	ai.Post("/chat", middleware.RateLimit(
		s.redis, 15, time.Minute, "companion_chat"), s.SendChatMessage)

	// Blog routes; the wildcard keeps nested slugs addressable
	blogRoutes := api.Group("/blogs")
	blogRoutes.Get("/", s.GetBlogs)
	blogRoutes.Get("/*", s.GetBlogArticle)

	// Moderation routes
	api.Post("/moderation/toxic-check", s.ToxicCheck)

	// Community routes
	communities := api.Group("/communities")
	communities.Get("/", s.GetCommunities)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	communities.Get("/:id/posts", s.GetCommunityPosts)
	communities.Post("/:id/posts", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreateCommunityPost)
	communities.Post("/:id/join", middleware.AuthRequired, s.JoinCommunity)
	communities.Get("/:id", s.GetCommunity)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/:id/comments", s.GetPostComments)
	posts.Post("/:id/comments", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreatePostComment)
	posts.Get("/:id", s.GetPost)

	// Vote routes
	api.Post("/votes", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 30, time.Minute, "votes"), s.CastVote)

	// User routes
	api.Get("/users/me", middleware.AuthRequired, s.GetMyProfile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: rate limiting fails open without it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "MindHaven API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
