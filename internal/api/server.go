package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/analyzer"
	"github.com/spigell/skillgap/internal/skills"
)

const appName = "skillgap"

// Config holds HTTP server settings.
type Config struct {
	Addr         string        `mapstructure:"addr"`
	BodyLimit    int           `mapstructure:"body-limit"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	AllowOrigins string        `mapstructure:"allow-origins"`
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		BodyLimit:    4 * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		AllowOrigins: "*",
	}
}

// Service is the analysis backend the handlers call.
type Service interface {
	Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Report, error)
	Roles() []skills.Role
	Labels() []string
}

type Server struct {
	app     *fiber.App
	cfg     Config
	service Service
	logger  *zap.Logger
}

func New(service Service, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	defaults := DefaultConfig()
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaults.BodyLimit
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}

	s := &Server{cfg: cfg, service: service, logger: log}

	s.app = fiber.New(fiber.Config{
		AppName:               appName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	// requestLogger wraps recover so recovered panics are logged as 5xx.
	s.app.Use(requestLogger(log))
	s.app.Use(recover.New())
	if cfg.AllowOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", s.handleHealth)
	api.Get("/roles", s.handleRoles)
	api.Post("/analyze", s.handleAnalyze)
	api.Post("/analyze/upload", s.handleUpload)
}

// Listen blocks until the server stops.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http request", fields...)
		} else {
			log.Info("http request", fields...)
		}
		return nil
	}
}
