package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/service"
)

// ManageHandler serves super administrator routing and reporting endpoints.
type ManageHandler struct {
	tickets       *service.TicketService
	assignments   *service.AssignmentService
	directory     *service.DirectoryService
	progress      *service.ProgressService
	reports       *service.ReportService
	notifications *service.NotificationService
}

// ManageDependencies bundles the services behind /manage.
type ManageDependencies struct {
	Tickets       *service.TicketService
	Assignments   *service.AssignmentService
	Directory     *service.DirectoryService
	Progress      *service.ProgressService
	Reports       *service.ReportService
	Notifications *service.NotificationService
}

// NewManageHandler constructs handler.
func NewManageHandler(deps ManageDependencies) *ManageHandler {
	return &ManageHandler{
		tickets:       deps.Tickets,
		assignments:   deps.Assignments,
		directory:     deps.Directory,
		progress:      deps.Progress,
		reports:       deps.Reports,
		notifications: deps.Notifications,
	}
}

// Summary GET /manage/summary.
func (h *ManageHandler) Summary(c *fiber.Ctx) error {
	rows, err := h.reports.ComplaintsSummary(c.UserContext(), nil)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusCountResponses(rows)})
}

// ListTickets GET /manage/tickets.
func (h *ManageHandler) ListTickets(c *fiber.Ctx) error {
	status, err := statusQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// GetTicket GET /manage/tickets/:id.
func (h *ManageHandler) GetTicket(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.GetDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(*detail)})
}

// Assign PUT /manage/tickets/:id/assignment.
func (h *ManageHandler) Assign(c *fiber.Ctx) error {
	principal, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.assignments.Assign(c.UserContext(), principal.Actor(), id, req.DepartmentID, req.AdminID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*ticket)})
}

// SetSeverity PUT /manage/tickets/:id/severity.
func (h *ManageHandler) SetSeverity(c *fiber.Ctx) error {
	principal, err := adminPrincipal(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SeverityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ticket, err := h.tickets.SetSeverity(c.UserContext(), principal.Actor(), id, req.SeverityID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*ticket)})
}

// Departments GET /manage/departments.
func (h *ManageHandler) Departments(c *fiber.Ctx) error {
	depts, err := h.directory.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponses(depts)})
}

// DepartmentAdmins GET /manage/departments/:id/admins.
func (h *ManageHandler) DepartmentAdmins(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	admins, err := h.assignments.AssignableAdmins(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponses(admins)})
}

// SeverityLevels GET /manage/severity-levels.
func (h *ManageHandler) SeverityLevels(c *fiber.Ctx) error {
	levels, err := h.directory.ListSeverityLevels(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSeverityResponses(levels)})
}

// Progress GET /manage/progress.
func (h *ManageHandler) Progress(c *fiber.Ctx) error {
	scores, err := h.progress.ScoreAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProgressResponses(scores)})
}

// NotifyAdmin POST /manage/progress/notify.
func (h *ManageHandler) NotifyAdmin(c *fiber.Ctx) error {
	var req dto.NotifyAdminRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	n, err := h.notifications.NotifyAdministrator(c.UserContext(), req.AdminID, req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNotificationResponse(*n)})
}
