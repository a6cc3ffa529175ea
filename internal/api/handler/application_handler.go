package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// ApplicationHandler handles job application requests
type ApplicationHandler struct {
	logger *slog.Logger
	svc    ApplicationService
	resp   responder
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{logger: deps.Logger, svc: deps.Applications, resp: deps.responder()}
}

// Apply handles POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	h.logger.Info("Apply called",
		slog.Int64("user_id", userID(c)),
		slog.Int64("job_id", req.JobID),
	)

	res, err := h.svc.Apply(c.Request.Context(), userID(c), req.JobID, req.CoverLetter)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplyResponse{
		Message:       fmt.Sprintf("application to %s submitted", res.CompanyName),
		ApplicationID: res.Application.ID,
		JobTitle:      res.JobTitle,
		CompanyName:   res.CompanyName,
		Status:        res.Application.Status,
		AppliedAt:     res.Application.AppliedAt,
	})
}

// ListMine handles GET /applications/me
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	var q dto.ListApplicationsQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.ListMine(c.Request.Context(), userID(c), service.ApplicationQuery{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
		SortBy: q.SortBy,
		Order:  q.Order,
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// Get handles GET /applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// History handles GET /applications/:id/history
func (h *ApplicationHandler) History(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	history, err := h.svc.History(c.Request.Context(), id, userID(c))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicationId": id, "history": history})
}

// Withdraw handles DELETE /applications/:id
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	h.logger.Info("Withdraw called",
		slog.Int64("user_id", userID(c)),
		slog.Int64("application_id", id),
	)

	res, err := h.svc.Withdraw(c.Request.Context(), id, userID(c))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{
		Message:       fmt.Sprintf("application to %s withdrawn", res.CompanyName),
		ApplicationID: res.ApplicationID,
		CompanyName:   res.CompanyName,
		WithdrawnAt:   res.WithdrawnAt,
	})
}

// UpdateStatus handles PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	h.logger.Info("UpdateStatus called",
		slog.Int64("requester_id", userID(c)),
		slog.Int64("application_id", id),
		slog.String("status", req.Status),
	)

	change, err := h.svc.UpdateStatus(c.Request.Context(), id, userID(c), req.Status)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusChangeResponse{
		Message:        "application status updated",
		ApplicationID:  change.ApplicationID,
		PreviousStatus: change.PreviousStatus,
		NewStatus:      change.NewStatus,
		UpdatedAt:      change.UpdatedAt,
	})
}

// Update handles PUT /applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	app, err := h.svc.Update(c.Request.Context(), id, userID(c), req.CoverLetter)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateApplicationResponse{
		Message:       "application updated",
		ApplicationID: app.ID,
		JobTitle:      app.JobTitle,
		CompanyName:   app.CompanyName,
		CoverLetter:   app.CoverLetter,
		UpdatedAt:     app.UpdatedAt,
	})
}
