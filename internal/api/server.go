// Package api exposes ingestion, categorization and rewards over HTTP.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-points/internal/buildinfo"
	"github.com/insightdelivered/statement-points/internal/categorize"
	"github.com/insightdelivered/statement-points/internal/config"
	"github.com/insightdelivered/statement-points/internal/ingest"
	"github.com/insightdelivered/statement-points/internal/logger"
)

// RequestIDHeader carries the per-request ID.
const RequestIDHeader = "X-Request-ID"

// Options configures a Server.
type Options struct {
	Ingest *ingest.Service
	// Categorizer may be nil, in which case /api/categorize answers 501.
	Categorizer categorize.Categorizer
	BatchSize   int
	Rewards     config.RewardsConfig
	BodyLimitMB int
	Log         zerolog.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	ingest  *ingest.Service
	batcher *categorize.Batcher
	rewards config.RewardsConfig
	limitMB int
	log     zerolog.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	b := categorize.NewBatcher(opts.Categorizer, opts.Log)
	if opts.BatchSize > 0 {
		b.Size = opts.BatchSize
	}
	return &Server{
		ingest:  opts.Ingest,
		batcher: b,
		rewards: opts.Rewards,
		limitMB: opts.BodyLimitMB,
		log:     opts.Log,
	}
}

// App builds the fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	cfg := fiber.Config{AppName: "statement-points"}
	if s.limitMB > 0 {
		cfg.BodyLimit = s.limitMB << 20
	}
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(s.requestLogger)

	s.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (s *Server) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/parse", s.handleParse)
	api.Post("/categorize", s.handleCategorize)
	api.Post("/rewards", s.handleRewards)
	api.Post("/optimize", s.handleOptimize)
}

// requestLogger tags each request with an ID and a scoped logger.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)

	log := logger.WithFields(s.log, map[string]any{"request_id": id})
	c.SetUserContext(logger.WithContext(c.UserContext(), log))

	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}
	log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": buildinfo.Version,
	})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
