// internal/handlers/notification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /admin/notifications?unread=true
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.List(c.Request.Context(), adminID, unreadOnly, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(notifications, total, params))
}

// POST /admin/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), adminID, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id})
}
