package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// JobHandler handles job posting requests
type JobHandler struct {
	logger *slog.Logger
	svc    JobService
	resp   responder
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{logger: deps.Logger, svc: deps.Jobs, resp: deps.responder()}
}

func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		RequiredCareer: req.RequiredCareer,
		Salary:         req.Salary,
		Location:       req.Location,
		JobType:        req.JobType,
		Deadline:       req.Deadline,
		Status:         req.Status,
	}
}

// splitSkills turns "Go, SQL,,Redis" into [Go SQL Redis]
func splitSkills(raw string) []string {
	var skills []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// List handles GET /jobs
func (h *JobHandler) List(c *gin.Context) {
	var q dto.ListJobsQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	h.logger.Debug("ListJobs called", slog.String("query", c.Request.URL.RawQuery))

	page, err := h.svc.List(c.Request.Context(), service.JobQuery{
		Location:    q.Location,
		MaxCareer:   q.MaxCareer,
		MinSalary:   q.MinSalary,
		MaxSalary:   q.MaxSalary,
		Skills:      splitSkills(q.Skills),
		Keyword:     q.Keyword,
		CompanyName: q.CompanyName,
		JobType:     q.JobType,
		SortBy:      q.SortBy,
		Order:       q.Order,
		Pagination:  model.Pagination{Page: q.Page, Limit: q.Limit},
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// Get handles GET /jobs/:id and counts a view
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	related := detail.RelatedJobs
	if related == nil {
		related = []model.Job{}
	}
	c.JSON(http.StatusOK, dto.JobDetailResponse{JobListItem: detail.Job, RelatedJobs: related})
}

// Create handles POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	job, err := h.svc.Create(c.Request.Context(), userID(c), jobInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("Job created",
		slog.Int64("job_id", job.ID),
		slog.Int64("company_id", job.CompanyID),
	)
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "job created", Data: job})
}

// Update handles PUT /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.JobRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	job, err := h.svc.Update(c.Request.Context(), id, userID(c), jobInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "job updated", Data: job})
}

// Close handles DELETE /jobs/:id. The posting is closed, not removed.
func (h *JobHandler) Close(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Close(c.Request.Context(), id, userID(c)); err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "job closed"})
}
