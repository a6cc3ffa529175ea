package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

type BookmarkHandler struct {
	logger *slog.Logger
	svc    BookmarkService
	resp   responder
}

func NewBookmarkHandler(deps *Dependencies) *BookmarkHandler {
	return &BookmarkHandler{logger: deps.Logger, svc: deps.Bookmarks, resp: deps.responder()}
}

// Toggle handles POST /bookmarks. 201 when added, 200 when removed.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	var req dto.ToggleBookmarkRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Toggle(c.Request.Context(), userID(c), req.TargetType, req.TargetID)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	if !res.Added {
		c.JSON(http.StatusOK, dto.ToggleBookmarkResponse{Message: "bookmark removed", Action: "removed"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToggleBookmarkResponse{
		Message:  "bookmark added",
		Action:   "added",
		Bookmark: res.Bookmark,
	})
}

// List handles GET /bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	var q dto.ListBookmarksQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.List(c.Request.Context(), userID(c), q.Type, model.Pagination{Page: q.Page, Limit: q.Limit})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// Check handles GET /bookmarks/check/:targetType/:targetId
func (h *BookmarkHandler) Check(c *gin.Context) {
	targetID, ok := h.resp.pathID(c, "targetId")
	if !ok {
		return
	}

	marked, err := h.svc.Check(c.Request.Context(), userID(c), c.Param("targetType"), targetID)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BookmarkCheckResponse{IsBookmarked: marked})
}
