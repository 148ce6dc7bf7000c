package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/store"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// Config holds the service settings.
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheMB      int
	// Grid, Width and Height are used when a request does not set them.
	Grid      grid.Settings
	Width     int
	Height    int
	ShareBase string
	// Quiet disables the request log.
	Quiet bool
}

// Server renders and stores floor plans over HTTP.
type Server struct {
	app   *fiber.App
	store *store.Store
	cache *renderCache
	cfg   Config
}

// New builds the fiber app. The store may be nil, in which case the /plans routes answer 503.
func New(cfg Config, st *store.Store) (*Server, error) {
	cache, err := newRenderCache(cfg.CacheMB)
	if err != nil {
		return nil, err
	}

	s := &Server{store: st, cache: cache, cfg: cfg}
	s.app = fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		AppName:      "Floor Plan Service",
		BodyLimit:    8 * 1024 * 1024,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	s.app.Use(recover.New())
	if !cfg.Quiet {
		s.app.Use(requestLogger())
	}

	// ============================================================
	// Health Check Routes
	// ============================================================

	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", s.ready)

	// ============================================================
	// Drawing Routes
	// ============================================================

	s.app.Post("/render", s.renderPNG)
	s.app.Post("/svg", s.renderSVG)
	s.app.Post("/summary", s.summary)
	s.app.Post("/validate", s.validate)

	// ============================================================
	// Saved Plan Routes
	// ============================================================

	s.app.Post("/plans", s.savePlan)
	s.app.Get("/plans", s.listPlans)
	s.app.Get("/plans/:id", s.getPlan)
	s.app.Put("/plans/:id", s.updatePlan)
	s.app.Delete("/plans/:id", s.deletePlan)
	s.app.Get("/plans/:id/png", s.getPlanPNG)
	s.app.Get("/plans/:id/svg", s.getPlanSVG)

	return s, nil
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting Floor Plan Service on %s", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("Shutting down Floor Plan Service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// Close releases the render cache.
func (s *Server) Close() {
	s.cache.close()
}

func requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
