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

// AdminHandler serves endpoints for administrators working their queue.
type AdminHandler struct {
	tickets   *service.TicketService
	responses *service.ResponseService
	reports   *service.ReportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(tickets *service.TicketService, responses *service.ResponseService, reports *service.ReportService) *AdminHandler {
	return &AdminHandler{tickets: tickets, responses: responses, reports: reports}
}

// ListTickets GET /admin/tickets.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	principal, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	status, err := statusQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListForAdmin(c.UserContext(), principal.Admin.ID, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// GetTicket GET /admin/tickets/:id.
func (h *AdminHandler) GetTicket(c *fiber.Ctx) error {
	_, ticket, err := h.assignedTicket(c)
	if err != nil {
		return err
	}
	detail, err := h.tickets.GetDetail(c.UserContext(), ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(*detail)})
}

// Summary GET /admin/summary.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	principal, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	rows, err := h.reports.ComplaintsSummary(c.UserContext(), &principal.Admin.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusCountResponses(rows)})
}

// Statuses GET /admin/statuses lists the statuses the caller may set.
func (h *AdminHandler) Statuses(c *fiber.Ctx) error {
	principal, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatusOptions(settableStatuses(principal))})
}

// UpdateStatus PUT /admin/tickets/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ticket, err := h.assignedTicket(c)
	if err != nil {
		return err
	}
	var req dto.StatusChangeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	status, ok := dto.ParseStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}
	if status.IsTerminal() && !principal.IsSuperAdmin() {
		return apperrors.NewForbidden("administrators cannot close or drop tickets")
	}
	updated, err := h.tickets.Transition(c.UserContext(), principal.Actor(), ticket.ID, status, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*updated)})
}

// AddResponse POST /admin/tickets/:id/responses.
func (h *AdminHandler) AddResponse(c *fiber.Ctx) error {
	principal, ticket, err := h.assignedTicket(c)
	if err != nil {
		return err
	}
	var req dto.CreateResponseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, err := h.responses.Append(c.UserContext(), ticket.ID, service.AppendResponseInput{
		AuthorRole:   domain.AuthorRoleAdmin,
		AuthorID:     principal.Admin.ID,
		Body:         req.Body,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewResponseResponse(*resp)})
}

// ListResponses GET /admin/tickets/:id/responses.
func (h *AdminHandler) ListResponses(c *fiber.Ctx) error {
	_, ticket, err := h.assignedTicket(c)
	if err != nil {
		return err
	}
	views, err := h.responses.List(c.UserContext(), ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResponseViews(views)})
}

// assignedTicket loads the :id ticket. Normal administrators only see tickets
// assigned to them.
func (h *AdminHandler) assignedTicket(c *fiber.Ctx) (*auth.Principal, *domain.Ticket, error) {
	principal, err := adminPrincipal(c)
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
	if !principal.IsSuperAdmin() && (ticket.AdminID == nil || *ticket.AdminID != principal.Admin.ID) {
		return nil, nil, apperrors.NewForbidden("ticket is not assigned to you")
	}
	return principal, ticket, nil
}

func settableStatuses(principal *auth.Principal) []domain.TicketStatus {
	if principal.IsSuperAdmin() {
		return domain.TicketStatuses
	}
	out := make([]domain.TicketStatus, 0, len(domain.TicketStatuses))
	for _, s := range domain.TicketStatuses {
		if !s.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}
