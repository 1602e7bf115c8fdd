package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// TicketsHandler manages ticket-owner endpoints.
type TicketsHandler struct {
	tickets   *service.TicketService
	responses *service.ResponseService
	reports   *service.ReportService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, responses *service.ResponseService, reports *service.ReportService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, responses: responses, reports: reports}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, err := userPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.Create(c.UserContext(), principal.User.ID, service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		SeverityID:  req.SeverityID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(*ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, err := userPrincipal(c)
	if err != nil {
		return err
	}
	status, err := statusQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListForOwner(c.UserContext(), principal.User.ID, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, err := userPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.GetDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	if detail.OwnerID != principal.User.ID {
		return ticketNotFound(id)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(*detail)})
}

// AddResponse POST /tickets/:id/responses.
func (h *TicketsHandler) AddResponse(c *fiber.Ctx) error {
	principal, ticket, err := h.ownedTicket(c)
	if err != nil {
		return err
	}
	var req dto.CreateResponseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.responses.Append(c.UserContext(), ticket.ID, service.AppendResponseInput{
		AuthorRole: domain.AuthorRoleUser,
		AuthorID:   principal.User.ID,
		Body:       req.Body,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewResponseResponse(*resp)})
}

// ListResponses GET /tickets/:id/responses.
func (h *TicketsHandler) ListResponses(c *fiber.Ctx) error {
	_, ticket, err := h.ownedTicket(c)
	if err != nil {
		return err
	}
	views, err := h.responses.List(c.UserContext(), ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResponseViews(views)})
}

// CloseTicket POST /tickets/:id/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	principal, ticket, err := h.ownedTicket(c)
	if err != nil {
		return err
	}
	updated, err := h.tickets.Transition(c.UserContext(), principal.Actor(), ticket.ID, domain.TicketStatusClosed, "")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*updated)})
}

// DropTicket POST /tickets/:id/drop.
func (h *TicketsHandler) DropTicket(c *fiber.Ctx) error {
	principal, ticket, err := h.ownedTicket(c)
	if err != nil {
		return err
	}
	var req dto.DropTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.tickets.Transition(c.UserContext(), principal.Actor(), ticket.ID, domain.TicketStatusDropped, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*updated)})
}

// AddFeedback POST /tickets/:id/feedback.
func (h *TicketsHandler) AddFeedback(c *fiber.Ctx) error {
	_, ticket, err := h.ownedTicket(c)
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	feedback, err := h.tickets.AddFeedback(c.UserContext(), ticket.ID, req.Sentiment, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(*feedback)})
}

// Summary GET /me/summary.
func (h *TicketsHandler) Summary(c *fiber.Ctx) error {
	principal, err := userPrincipal(c)
	if err != nil {
		return err
	}
	counts, err := h.reports.OwnerCounts(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OwnerCountsResponse{Total: counts.Total, ByStatus: counts.ByStatus}})
}

// ownedTicket loads the :id ticket and hides it from anyone but its owner.
func (h *TicketsHandler) ownedTicket(c *fiber.Ctx) (*auth.Principal, *domain.Ticket, error) {
	principal, err := userPrincipal(c)
	if err != nil {
		return nil, nil, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return nil, nil, err
	}
	ticket, err := h.tickets.Get(c.UserContext(), id)
	if err != nil {
		return nil, nil, err
	}
	if ticket.OwnerID != principal.User.ID {
		return nil, nil, ticketNotFound(id)
	}
	return principal, ticket, nil
}

func ticketNotFound(id int64) error {
	return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
}
