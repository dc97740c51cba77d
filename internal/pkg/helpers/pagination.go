package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ParsePagination reads page and limit query parameters, falling back to
// sane defaults and capping the page size.
func ParsePagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

// NewPaginationInfo builds the pagination block for list responses
func NewPaginationInfo(page, limit int, total int64) dto.PaginationInfo {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		PageSize:    limit,
		TotalItems:  total,
		TotalPages:  pages,
	}
}
