package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// NotificationsHandler serves the caller's own notification inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /me/notifications and /admin/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	target, err := callerTarget(c)
	if err != nil {
		return err
	}
	items, err := h.notifications.List(c.UserContext(), target)
	if err != nil {
		return err
	}
	unread, err := h.notifications.UnreadCount(c.UserContext(), target)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNotificationList(items, unread)})
}

// MarkAllRead PUT /me/notifications/read and /admin/notifications/read.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	target, err := callerTarget(c)
	if err != nil {
		return err
	}
	updated, err := h.notifications.MarkAllRead(c.UserContext(), target)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": updated}})
}

func callerTarget(c *fiber.Ctx) (domain.NotificationTarget, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.NotificationTarget{}, apperrors.NewUnauthorized("authentication required")
	}
	switch {
	case principal.User != nil:
		return domain.UserTarget(principal.User.ID), nil
	case principal.Admin != nil:
		return domain.AdminTarget(principal.Admin.ID), nil
	}
	return domain.NotificationTarget{}, apperrors.NewUnauthorized("authentication required")
}
