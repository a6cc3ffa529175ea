package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// ContextUserID is the gin context key the auth middleware stores the caller under
const ContextUserID = "userId"

// responder writes service results and errors as JSON
type responder struct {
	logger       *slog.Logger
	exposeErrors bool
}

func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindDuplicate, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (r responder) error(c *gin.Context, err error) {
	de, ok := domain.AsError(err)
	if !ok || de.Kind == domain.KindUnexpected {
		r.logger.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)

		resp := dto.ErrorResponse{Message: "internal server error"}
		if r.exposeErrors {
			resp.Details = map[string]any{"error": err.Error()}
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(statusOf(de.Kind), dto.ErrorResponse{Message: de.Message, Details: de.Details})
}

func (r responder) badRequest(c *gin.Context, message string, err error) {
	resp := dto.ErrorResponse{Message: message}
	if err != nil {
		resp.Details = map[string]any{"error": err.Error()}
	}
	c.JSON(http.StatusBadRequest, resp)
}

// bindJSON binds the body and answers 400 on failure
func (r responder) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		r.logger.Debug("Invalid request body", slog.String("error", err.Error()))
		r.badRequest(c, "invalid request body", err)
		return false
	}
	return true
}

func (r responder) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		r.badRequest(c, "invalid query parameters", err)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter and answers 400 otherwise
func (r responder) pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: name + " must be a positive integer",
			Details: map[string]any{name: raw},
		})
		return 0, false
	}
	return id, true
}

// userID returns the caller set by the auth middleware
func userID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

func listResponse[T any](page *service.Page[T]) dto.ListResponse[T] {
	return dto.ListResponse[T]{
		Items:       page.Items,
		Total:       page.Total,
		CurrentPage: page.Pagination.Page,
		TotalPages:  page.TotalPages(),
	}
}

func pagination(q dto.PageQuery) model.Pagination {
	return model.Pagination{Page: q.Page, Limit: q.Limit}
}
