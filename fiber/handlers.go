package fiber

import (
	"strings"

	"github.com/fwojciec/pagemeta"
	"github.com/gofiber/fiber/v2"
)

// inspectRequest is the body of POST /inspect.
type inspectRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// handleInspect fetches and inspects the page named by the url query.
// Failures other than invalid input or missing pages are reported as 502
// with a fixed message. The cause is logged, not returned.
func (s *Server) handleInspect(c *fiber.Ctx) error {
	target := strings.TrimSpace(c.Query("url"))
	if target == "" {
		return pagemeta.Errorf(pagemeta.EINVALID, "url query parameter required")
	}

	inspection, err := s.inspector.Inspect(c.UserContext(), target)
	if err != nil {
		code := pagemeta.ErrorCode(err)
		if code == pagemeta.EINVALID || code == pagemeta.ENOTFOUND {
			return err
		}
		s.logger.Warn("upstream fetch failed", "url", target, "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Code:  pagemeta.EINTERNAL,
			Error: "Could not fetch page.",
		})
	}
	return c.JSON(inspection)
}

// handleInspectHTML inspects markup posted by the client.
func (s *Server) handleInspectHTML(c *fiber.Ctx) error {
	var req inspectRequest
	if err := c.BodyParser(&req); err != nil {
		return pagemeta.Errorf(pagemeta.EINVALID, "invalid request body: %v", err)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return pagemeta.Errorf(pagemeta.EINVALID, "html required")
	}

	inspection, err := s.inspector.InspectHTML(c.UserContext(), req.URL, req.HTML)
	if err != nil {
		return err
	}
	return c.JSON(inspection)
}

func (s *Server) handleListInspections(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	if limit < 0 || offset < 0 {
		return pagemeta.Errorf(pagemeta.EINVALID, "limit and offset must not be negative")
	}

	filter := pagemeta.InspectionFilter{Limit: limit, Offset: offset}
	if raw := strings.TrimSpace(c.Query("url")); raw != "" {
		normalized, err := pagemeta.NormalizeURL(raw)
		if err != nil {
			return err
		}
		filter.URL = &normalized
	}

	inspections, err := s.inspections.FindInspections(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(inspections)
}

func (s *Server) handleGetInspection(c *fiber.Ctx) error {
	inspection, err := s.inspections.FindInspectionByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(inspection)
}

func (s *Server) handleDeleteInspection(c *fiber.Ctx) error {
	if err := s.inspections.DeleteInspection(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
