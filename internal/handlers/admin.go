// internal/handlers/admin.go
package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	pricingService *services.PricingService
	console        *services.AdminConsole
}

func NewAdminHandler(adminService *services.AdminService, pricingService *services.PricingService, console *services.AdminConsole) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		pricingService: pricingService,
		console:        console,
	}
}

// POST /admin/pricelists?source=standard
func (h *AdminHandler) UploadPriceList(c *gin.Context) {
	source, ok := sourceParam(c, c.DefaultQuery("source", string(models.SourceStandard)))
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	if err := h.adminService.ValidateUpload(header.Filename, header.Size); err != nil {
		respondError(c, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	result, err := h.adminService.UploadPriceList(c.Request.Context(), source, header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.Translate(c, i18n.KeyPriceListLoaded, result.Loaded),
		"result":  result,
	})
}

// DELETE /admin/products
func (h *AdminHandler) ClearProducts(c *gin.Context) {
	result, err := h.adminService.ClearAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": utils.Translate(c, i18n.KeyAdminProductsCleared),
		"result":  result,
	})
}

// GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/help
func (h *AdminHandler) GetHelp(c *gin.Context) {
	help := h.adminService.Help()
	if help == "" {
		help = utils.Translate(c, i18n.KeyAdminHelp)
	}
	utils.SuccessResponse(c, gin.H{"help": help})
}

// GET /admin/markup
func (h *AdminHandler) GetMarkup(c *gin.Context) {
	summary, err := h.pricingService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// PUT /admin/markup
func (h *AdminHandler) SetMarkup(c *gin.Context) {
	h.setGlobalMarkup(c, false)
}

// PUT /admin/markup/preorder
func (h *AdminHandler) SetPreorderMarkup(c *gin.Context) {
	h.setGlobalMarkup(c, true)
}

func (h *AdminHandler) setGlobalMarkup(c *gin.Context, preorder bool) {
	var req services.SetMarkupRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.pricingService.SetGlobalMarkup(c.Request.Context(), preorder, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  utils.Translate(c, i18n.KeyMarkupUpdated, req.Amount.String()),
		"preorder": preorder,
		"amount":   req.Amount,
	})
}

func userIDParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationInvalid, "user_id"), nil)
		return 0, false
	}
	return userID, true
}

// GET /admin/markup/users
func (h *AdminHandler) ListUserMarkups(c *gin.Context) {
	overrides, err := h.pricingService.ListUserMarkups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, overrides)
}

// GET /admin/markup/users/:user_id
func (h *AdminHandler) GetUserMarkup(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	amount, err := h.pricingService.GetUserMarkup(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user_id": userID, "amount": amount})
}

// PUT /admin/markup/users/:user_id
func (h *AdminHandler) SetUserMarkup(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req services.SetMarkupRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.pricingService.SetUserMarkup(c.Request.Context(), userID, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": utils.Translate(c, i18n.KeyMarkupOverrideSet, userID, req.Amount.String()),
		"user_id": userID,
		"amount":  req.Amount,
	})
}

// DELETE /admin/markup/users/:user_id
func (h *AdminHandler) DeleteUserMarkup(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.pricingService.RemoveUserMarkup(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": utils.Translate(c, i18n.KeyMarkupOverrideRemove, userID)})
}

// POST /admin/commands
func (h *AdminHandler) RunCommand(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CommandRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.console.Submit(c.Request.Context(), adminID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /admin/prompts
func (h *AdminHandler) CreatePrompt(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.PromptRequest
	if !bindJSON(c, &req) {
		return
	}

	pending, err := h.console.Prompt(c.Request.Context(), adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pending)
}

// GET /admin/prompts
func (h *AdminHandler) GetPrompt(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	pending, err := h.console.Pending(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"pending": pending})
}

// DELETE /admin/prompts
func (h *AdminHandler) CancelPrompt(c *gin.Context) {
	adminID, ok := requireUser(c)
	if !ok {
		return
	}

	cancelled, err := h.console.Cancel(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cancelled": cancelled})
}
