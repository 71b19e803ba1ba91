// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/phonemarket/backend/internal/services"
	"github.com/phonemarket/backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /catalog/:source/tree
func (h *CatalogHandler) GetTree(c *gin.Context) {
	source, ok := sourceParam(c, c.Param("source"))
	if !ok {
		return
	}

	tree, err := h.catalogService.Tree(c.Request.Context(), source)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, tree)
}

// GET /catalog/:source/parents/:parent/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	source, ok := sourceParam(c, c.Param("source"))
	if !ok {
		return
	}

	categories, err := h.catalogService.Categories(c.Request.Context(), source, c.Param("parent"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(categories) == 0 {
		utils.NotFoundResponse(c, "category")
		return
	}

	utils.SuccessResponse(c, categories)
}

// GET /catalog/:source/categories/:category/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	source, ok := sourceParam(c, c.Param("source"))
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c)

	records, err := h.catalogService.Products(c.Request.Context(), source, c.Param("category"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, records)
}

// GET /catalog/:source/categories/:category/groups
func (h *CatalogHandler) GetGroups(c *gin.Context) {
	source, ok := sourceParam(c, c.Param("source"))
	if !ok {
		return
	}
	userID, _ := utils.GetUserIDFromContext(c)

	groups, err := h.catalogService.Groups(c.Request.Context(), source, c.Param("category"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, groups)
}

// POST /catalog/classify
func (h *CatalogHandler) Classify(c *gin.Context) {
	var req services.ClassifyRequest
	if !bindJSON(c, &req) {
		return
	}

	utils.SuccessResponse(c, h.catalogService.Classify(req.Name))
}
