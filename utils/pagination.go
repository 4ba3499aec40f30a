package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"perpage"`
}

// PageFromQuery reads page/perpage query parameters, clamping to sane
// bounds.
func PageFromQuery(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perpage", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// Scope applies the limit/offset pair to a query.
func (p Pagination) Scope(db *gorm.DB) *gorm.DB {
	return db.Limit(p.PerPage).Offset((p.Page - 1) * p.PerPage)
}

// PagedData is the envelope body for paginated listings.
type PagedData struct {
	Results interface{} `json:"results"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"perpage"`
}
