// Package handlers implements the HTTP endpoint handlers for the DeepDock
// API. Handlers translate between HTTP and the application services; no
// business logic lives here.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/middleware"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// respondOK writes a wrapped 200 response.
func respondOK[T any](c *gin.Context, data T) {
	respond(c, http.StatusOK, data)
}

func respond[T any](c *gin.Context, status int, data T) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

// respondError maps an error to its HTTP status via the AppError code table
// and writes the wrapped error body. Non-AppError failures surface as 500s
// with a generic message so internals never leak.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	message := errors.DefaultMessageForCode(code)

	var ae *errors.AppError
	if errors.As(err, &ae) {
		message = ae.Message
	} else {
		code = errors.ErrCodeInternal
		message = errors.DefaultMessageForCode(code)
	}

	resp := common.NewErrorResponse(code.String(), message)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), resp)
}

// respondBindError reports a request-body binding failure as a 400.
func respondBindError(c *gin.Context, err error) {
	respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
}

// parsePagination reads page/page_size query parameters with defaults. Bounds
// are enforced by Pagination.Validate in the service layer.
func parsePagination(c *gin.Context) common.Pagination {
	page := queryInt(c, "page", defaultPage)
	size := queryInt(c, "page_size", defaultPageSize)
	return common.Pagination{Page: page, PageSize: size}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
