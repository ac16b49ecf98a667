// Package controller holds the gin handlers. Controllers bind and shape
// only; behavior lives in the usecases.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// respondError maps the domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, domain.NewErrorResponse(err.Error()))
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotVerified):
		c.JSON(http.StatusForbidden, domain.NewErrorResponse(err.Error()))
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusForbidden, domain.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, domain.NewErrorResponse("something went wrong"))
	}
}

// pagination reads limit / pageNumber with the API defaults.
func pagination(c *gin.Context) (page, pageSize int64) {
	pageSize = queryInt64(c, "limit", defaultPageSize)
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	page = queryInt64(c, "pageNumber", 0)
	if page < 0 {
		page = 0
	}
	return page, pageSize
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
