package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/bloodmagesoftware/floorplan/grid"
	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/bloodmagesoftware/floorplan/render"
	"github.com/bloodmagesoftware/floorplan/share"
	"github.com/bloodmagesoftware/floorplan/store"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Request Helpers
// ============================================================

// maxCanvas bounds both sides of any image the service draws.
const maxCanvas = 8192

var errPlanTooLarge = fmt.Errorf("plan exceeds the maximum canvas of %dx%d", maxCanvas, maxCanvas)

// drawOptions are the grid and canvas settings of one request, taken from the query
// (grid, show_grid, width, height) with the service defaults as fallback.
type drawOptions struct {
	Grid   grid.Settings
	Width  int
	Height int
}

func (s *Server) drawOptions(c fiber.Ctx) drawOptions {
	opts := drawOptions{Grid: s.cfg.Grid, Width: s.cfg.Width, Height: s.cfg.Height}
	if opts.Grid.CellSize == 0 {
		opts.Grid = grid.DefaultSettings()
	}
	if v, err := strconv.Atoi(c.Query("grid")); err == nil {
		opts.Grid = opts.Grid.WithCellSize(v)
	}
	if v, err := strconv.ParseBool(c.Query("show_grid")); err == nil {
		opts.Grid.Visible = v
	}
	if v, err := strconv.Atoi(c.Query("width")); err == nil && v > 0 && v <= maxCanvas {
		opts.Width = v
	}
	if v, err := strconv.Atoi(c.Query("height")); err == nil && v > 0 && v <= maxCanvas {
		opts.Height = v
	}
	return opts
}

func decodePlan(body []byte) (*plan.Plan, error) {
	if len(body) == 0 {
		return nil, errors.New("body required")
	}
	p := plan.New()
	if err := json.Unmarshal(body, p); err != nil {
		return nil, errors.New("invalid JSON payload")
	}
	p.Normalize()
	return p, nil
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// canvasSize is the image size for p, grown to fit every element.
func (opts drawOptions) canvasSize(p *plan.Plan) (int, int, error) {
	width, height := render.FitSize(p, opts.Width, opts.Height, opts.Grid.Cell())
	if width > maxCanvas || height > maxCanvas {
		return 0, 0, errPlanTooLarge
	}
	return width, height, nil
}

func (s *Server) encodePNG(p *plan.Plan, opts drawOptions) ([]byte, error) {
	width, height, err := opts.canvasSize(p)
	if err != nil {
		return nil, err
	}
	img := render.Render(render.Frame{Plan: p, Grid: opts.Grid, Width: width, Height: height})
	return share.EncodePNG(img)
}

// ============================================================
// Health Check Handlers
// ============================================================

func (s *Server) ready(c fiber.Ctx) error {
	if s.store != nil {
		if err := s.store.Ping(c.Context()); err != nil {
			log.Printf("[READY] Store unreachable: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// Drawing Handlers
// ============================================================

// renderPNG draws a plan posted as JSON. Results are cached by body and options.
func (s *Server) renderPNG(c fiber.Ctx) error {
	opts := s.drawOptions(c)
	key := cacheKey("png", c.Body(), opts)
	if data, ok := s.cache.get(key); ok {
		c.Set("Content-Type", "image/png")
		c.Set("X-Cache", "HIT")
		return c.Send(data)
	}

	p, err := decodePlan(c.Body())
	if err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return badRequest(c, err)
	}
	if _, _, err := opts.canvasSize(p); err != nil {
		return badRequest(c, err)
	}

	data, err := s.encodePNG(p, opts)
	if err != nil {
		log.Printf("[RENDER] Encode error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	s.cache.set(key, data)

	c.Set("Content-Type", "image/png")
	c.Set("X-Cache", "MISS")
	return c.Send(data)
}

func (s *Server) renderSVG(c fiber.Ctx) error {
	opts := s.drawOptions(c)
	key := cacheKey("svg", c.Body(), opts)
	data, ok := s.cache.get(key)
	if !ok {
		p, err := decodePlan(c.Body())
		if err != nil {
			log.Printf("[SVG] Decode error: %v", err)
			return badRequest(c, err)
		}
		if _, _, err := opts.canvasSize(p); err != nil {
			return badRequest(c, err)
		}
		data = share.SVG(p, opts.Grid, opts.Width, opts.Height)
		s.cache.set(key, data)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(data)
}

// summary answers with the share projection and a ready-to-open message link.
func (s *Server) summary(c fiber.Ctx) error {
	p, err := decodePlan(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	opts := s.drawOptions(c)
	sum := share.Summarize(p, opts.Grid.Cell())
	text := sum.Text()
	return c.JSON(fiber.Map{
		"summary": sum,
		"text":    text,
		"link":    share.Link(s.cfg.ShareBase, text),
	})
}

func (s *Server) validate(c fiber.Ctx) error {
	p, err := decodePlan(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	issues := make([]string, 0)
	for _, is := range p.Validate() {
		issues = append(issues, is.String())
	}
	return c.JSON(fiber.Map{"valid": len(issues) == 0, "issues": issues})
}

// ============================================================
// Saved Plan Handlers
// ============================================================

func (s *Server) storeUnavailable(c fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "plan storage disabled"})
}

func (s *Server) storeError(c fiber.Ctx, tag string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[%s] Store error: %v", tag, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage error"})
}

func (s *Server) savePlan(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	p, err := decodePlan(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	id, err := s.store.Save(c.Context(), "", p)
	if err != nil {
		return s.storeError(c, "SAVE", err)
	}
	log.Printf("[SAVE] Stored plan %s (%q)", id, p.Name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (s *Server) updatePlan(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	id := c.Params("id")
	if _, err := s.store.Get(c.Context(), id); err != nil {
		return s.storeError(c, "UPDATE", err)
	}
	p, err := decodePlan(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	if _, err := s.store.Save(c.Context(), id, p); err != nil {
		return s.storeError(c, "UPDATE", err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (s *Server) listPlans(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	records, err := s.store.List(c.Context())
	if err != nil {
		return s.storeError(c, "LIST", err)
	}
	return c.JSON(records)
}

func (s *Server) getPlan(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	p, err := s.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.storeError(c, "GET", err)
	}
	return c.JSON(p)
}

func (s *Server) deletePlan(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	if err := s.store.Delete(c.Context(), c.Params("id")); err != nil {
		return s.storeError(c, "DELETE", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getPlanPNG(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	p, err := s.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.storeError(c, "PNG", err)
	}
	opts := s.drawOptions(c)
	if _, _, err := opts.canvasSize(p); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	data, err := s.encodePNG(p, opts)
	if err != nil {
		log.Printf("[PNG] Encode error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/png")
	c.Set("Content-Disposition", `attachment; filename="`+share.FileName(p.Name, "png")+`"`)
	return c.Send(data)
}

func (s *Server) getPlanSVG(c fiber.Ctx) error {
	if s.store == nil {
		return s.storeUnavailable(c)
	}
	p, err := s.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.storeError(c, "SVG", err)
	}
	opts := s.drawOptions(c)
	if _, _, err := opts.canvasSize(p); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/svg+xml")
	c.Set("Content-Disposition", `attachment; filename="`+share.FileName(p.Name, "svg")+`"`)
	return c.Send(share.SVG(p, opts.Grid, opts.Width, opts.Height))
}
