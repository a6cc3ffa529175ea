package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
)

type SearchHistoryHandler struct {
	logger *slog.Logger
	svc    SearchHistoryService
	resp   responder
}

func NewSearchHistoryHandler(deps *Dependencies) *SearchHistoryHandler {
	return &SearchHistoryHandler{logger: deps.Logger, svc: deps.Searches, resp: deps.responder()}
}

// Save handles POST /search-history
func (h *SearchHistoryHandler) Save(c *gin.Context) {
	var req dto.SaveSearchRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	search, err := h.svc.Save(c.Request.Context(), userID(c), req.Keyword, req.Filters)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "search saved", Data: search})
}

// List handles GET /search-history
func (h *SearchHistoryHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	res, err := h.svc.List(c.Request.Context(), userID(c), pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchHistoryResponse{
		ListResponse:    listResponse(&res.Page),
		PopularKeywords: res.PopularKeywords,
	})
}

// Delete handles DELETE /search-history/:id
func (h *SearchHistoryHandler) Delete(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "search deleted"})
}

// Clear handles DELETE /search-history
func (h *SearchHistoryHandler) Clear(c *gin.Context) {
	n, err := h.svc.Clear(c.Request.Context(), userID(c))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("Search history cleared", slog.Int64("user_id", userID(c)), slog.Int64("deleted", n))
	c.JSON(http.StatusOK, dto.ClearSearchResponse{Message: "search history cleared", DeletedCount: n})
}
