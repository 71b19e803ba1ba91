// internal/handlers/cart.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, utils.Translate(c, i18n.KeyValidationInvalid, "product_id"), nil)
		return 0, false
	}
	return uint(id), true
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": utils.Translate(c, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

// PUT /cart/items/:product_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.cartService.UpdateItem(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	key := i18n.KeyCartItemUpdated
	if req.Quantity <= 0 {
		key = i18n.KeyCartItemRemoved
	}
	utils.SuccessResponse(c, gin.H{"message": utils.Translate(c, key)})
}

// DELETE /cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": utils.Translate(c, i18n.KeyCartItemRemoved)})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	removed, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": utils.Translate(c, i18n.KeyCartCleared),
		"removed": removed,
	})
}
