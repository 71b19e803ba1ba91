// internal/handlers/navigation.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

type NavigationHandler struct {
	navigationService *services.NavigationService
}

func NewNavigationHandler(navigationService *services.NavigationService) *NavigationHandler {
	return &NavigationHandler{navigationService: navigationService}
}

// GET /navigation
func (h *NavigationHandler) Current(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view, err := h.navigationService.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// POST /navigation/open
func (h *NavigationHandler) Open(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.OpenRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.navigationService.Open(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// POST /navigation/back
func (h *NavigationHandler) Back(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view, moved, err := h.navigationService.Back(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !moved {
		utils.SuccessResponseWithMeta(c, view, gin.H{"message": utils.Translate(c, i18n.KeyNavigationTop)})
		return
	}
	utils.SuccessResponse(c, view)
}

// DELETE /navigation
func (h *NavigationHandler) Reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.navigationService.Reset(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": utils.Translate(c, i18n.KeyNavigationReset)})
}
