package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

const dayLayout = "2006-01-02"

// InterviewHandler handles interview scheduling
type InterviewHandler struct {
	logger *slog.Logger
	svc    InterviewService
	resp   responder
}

func NewInterviewHandler(deps *Dependencies) *InterviewHandler {
	return &InterviewHandler{logger: deps.Logger, svc: deps.Interviews, resp: deps.responder()}
}

// Schedule handles POST /interviews
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	interview, err := h.svc.Schedule(c.Request.Context(), userID(c), service.ScheduleInput{
		ApplicationID: req.ApplicationID,
		ScheduleDate:  req.ScheduleDate,
		Type:          req.Type,
		Location:      req.Location,
		InterviewLink: req.InterviewLink,
		Notes:         req.Notes,
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "interview scheduled", Data: interview})
}

// ListMine handles GET /interviews/me?status=&page=&limit=
func (h *InterviewHandler) ListMine(c *gin.Context) {
	var q dto.MyInterviewsQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.ListMine(c.Request.Context(), userID(c), q.Status, model.Pagination{Page: q.Page, Limit: q.Limit})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// ListByCompany handles GET /interviews/company/:companyId?status=&date=YYYY-MM-DD&page=&limit=
func (h *InterviewHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.resp.pathID(c, "companyId")
	if !ok {
		return
	}
	var q dto.CompanyInterviewsQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	filter := model.InterviewFilter{
		CompanyID:  companyID,
		Status:     q.Status,
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit},
	}
	if q.Date != "" {
		day, err := time.Parse(dayLayout, q.Date)
		if err != nil {
			h.resp.badRequest(c, "date must be formatted as YYYY-MM-DD", err)
			return
		}
		filter.Day = &day
	}

	page, err := h.svc.ListByCompany(c.Request.Context(), userID(c), filter)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// UpdateStatus handles PATCH /interviews/:id/status
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.InterviewStatusRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	interview, err := h.svc.UpdateStatus(c.Request.Context(), id, userID(c), req.Status, req.Notes)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "interview status updated", Data: interview})
}

// Reschedule handles PUT /interviews/:id/reschedule
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RescheduleInterviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	interview, err := h.svc.Reschedule(c.Request.Context(), id, userID(c), service.RescheduleInput{
		ScheduleDate:  req.ScheduleDate,
		Type:          req.Type,
		Location:      req.Location,
		InterviewLink: req.InterviewLink,
		Notes:         req.Notes,
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "interview rescheduled", Data: interview})
}
