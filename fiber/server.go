// Package fiber exposes page inspection and stored inspections over an HTTP
// JSON API built on gofiber.
package fiber

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in and out of the server.
const RequestIDHeader = "X-Request-Id"

// Inspector is the subset of inspect.Inspector the server needs.
type Inspector interface {
	Inspect(ctx context.Context, url string) (*pagemeta.Inspection, error)
	InspectHTML(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error)
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Server serves the pagemeta HTTP API.
type Server struct {
	app         *fiber.App
	inspector   Inspector
	inspections pagemeta.InspectionService
	logger      *slog.Logger
}

// NewServer creates a Server. A nil inspections service disables the
// /inspections routes; a nil logger discards request logs.
func NewServer(inspector Inspector, inspections pagemeta.InspectionService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		inspector:   inspector,
		inspections: inspections,
		logger:      logger,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(s.requestLogger)

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/inspect", s.handleInspect)
	s.app.Post("/inspect", s.handleInspectHTML)
	if inspections != nil {
		s.app.Get("/inspections", s.handleListInspections)
		s.app.Get("/inspections/:id", s.handleGetInspection)
		s.app.Delete("/inspections/:id", s.handleDeleteInspection)
	}

	return s
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestLogger assigns a request ID and logs one line per request.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	reqID := c.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	c.Locals("request_id", reqID)
	c.Set(RequestIDHeader, reqID)

	err := c.Next()
	if err != nil {
		// Write the error response now so the logged status is final.
		if herr := s.handleError(c, err); herr != nil {
			return herr
		}
	}

	s.logger.Info("request",
		"request_id", reqID,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"err", err,
	)
	return nil
}

// handleError maps errors to JSON error responses.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Code: codeForStatus(fe.Code), Error: fe.Message})
	}

	code := pagemeta.ErrorCode(err)
	status := statusFor(code)
	if status == fiber.StatusInternalServerError {
		s.logger.Error("internal error", "path", c.Path(), "err", err)
	}
	return c.Status(status).JSON(ErrorResponse{Code: code, Error: pagemeta.ErrorMessage(err)})
}

func statusFor(code string) int {
	switch code {
	case pagemeta.EINVALID:
		return fiber.StatusBadRequest
	case pagemeta.ENOTFOUND:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return pagemeta.ENOTFOUND
	case status >= 400 && status < 500:
		return pagemeta.EINVALID
	default:
		return pagemeta.EINTERNAL
	}
}
