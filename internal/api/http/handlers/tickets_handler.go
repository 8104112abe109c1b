package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/dto"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/auth"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/service"
	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets   *service.TicketService
	search    *service.SearchService
	export    *service.ExportService
	seed      *service.SeedService
	analytics *service.AnalyticsService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, search *service.SearchService, export *service.ExportService, seed *service.SeedService, analytics *service.AnalyticsService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, search: search, export: export, seed: seed, analytics: analytics}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Submit(c.UserContext(), service.SubmitInput{
		Customer: req.Customer,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// ListTickets GET /api/tickets?status=.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		return err
	}
	tickets, err := h.tickets.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, agentIDFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// SendResponse POST /api/tickets/:id/responses.
func (h *TicketsHandler) SendResponse(c *fiber.Ctx) error {
	var req dto.SendResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sentBy := domain.DefaultSenderLabel
	var agentID *string
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Agent != nil {
		if principal.Agent.DisplayName != "" {
			sentBy = principal.Agent.DisplayName
		}
		agentID = &principal.Agent.ID
	}

	ticket, err := h.tickets.SendResponse(c.UserContext(), c.Params("id"), req.Response, sentBy, agentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// SearchTickets GET /api/tickets/search?q=.
func (h *TicketsHandler) SearchTickets(c *fiber.Ctx) error {
	results, err := h.search.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(results)})
}

// ExportCSV GET /api/tickets/export?status=&q=. Exports what the
// dashboard currently displays: active search results when q is set,
// else the filtered list.
func (h *TicketsHandler) ExportCSV(c *fiber.Ctx) error {
	var tickets []domain.Ticket
	if q := c.Query("q"); q != "" {
		results, err := h.search.Search(c.UserContext(), q)
		if err != nil {
			return err
		}
		tickets = results
	} else {
		filter, err := parseStatusFilter(c.Query("status"))
		if err != nil {
			return err
		}
		list, err := h.tickets.List(c.UserContext(), filter)
		if err != nil {
			return err
		}
		tickets = list
	}

	data, err := h.export.BuildCSV(tickets)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.export.Filename()))
	return c.Send(data)
}

// SeedDemoTickets POST /api/tickets/seed-demo. Runs the canned
// submissions serially so live subscribers see them arrive one by one.
func (h *TicketsHandler) SeedDemoTickets(c *fiber.Ctx) error {
	created, err := h.seed.SeedDemoTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"created": created}})
}

// Analytics GET /api/analytics.
func (h *TicketsHandler) Analytics(c *fiber.Ctx) error {
	overview, err := h.analytics.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overview})
}

func parseStatusFilter(raw string) (*domain.TicketStatus, error) {
	if raw == "" || raw == "all" {
		return nil, nil
	}
	status := domain.TicketStatus(raw)
	if !domain.ValidStatus(status) {
		return nil, apperrors.NewValidationError("unknown status filter", map[string]any{"status": raw})
	}
	return &status, nil
}

func agentIDFromContext(c *fiber.Ctx) *string {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Agent != nil {
		return &principal.Agent.ID
	}
	return nil
}
