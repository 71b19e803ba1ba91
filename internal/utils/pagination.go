// internal/utils/pagination.go
package utils

import (
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultSort     = "created_at"
)

type PaginationParams struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// GetPaginationParams reads page, limit, sort and order from the query string.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	return NormalizePagination(PaginationParams{
		Page:  page,
		Limit: limit,
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	})
}

// NormalizePagination applies defaults and bounds to caller supplied values.
func NormalizePagination(params PaginationParams) PaginationParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > maxPageSize {
		params.Limit = defaultPageSize
	}
	if params.Order != "asc" && params.Order != "desc" {
		params.Order = "desc"
	}
	if params.Sort == "" {
		params.Sort = defaultSort
	}
	return params
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	return db.Offset((params.Page - 1) * params.Limit).Limit(params.Limit)
}

// ApplySort orders by params.Sort when it is allow-listed, falling back to created_at.
// Rows with equal keys are ordered by id in the same direction so pages do not overlap.
func ApplySort(db *gorm.DB, params PaginationParams, allowedSortFields []string) *gorm.DB {
	field := params.Sort
	if !slices.Contains(allowedSortFields, field) {
		field = defaultSort
	}
	desc := params.Order == "desc"

	columns := []clause.OrderByColumn{{Column: clause.Column{Name: field}, Desc: desc}}
	if field != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
	return db.Order(clause.OrderBy{Columns: columns})
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	var pages int
	if params.Limit > 0 {
		pages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	h := c.Writer.Header()
	h.Set("X-Total-Count", strconv.FormatInt(result.Total, 10))
	h.Set("X-Page", strconv.Itoa(result.Page))
	h.Set("X-Per-Page", strconv.Itoa(result.Limit))
	h.Set("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
