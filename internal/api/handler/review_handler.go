package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// CompanyReviewHandler handles workplace reviews
type CompanyReviewHandler struct {
	logger *slog.Logger
	svc    CompanyReviewService
	resp   responder
}

func NewCompanyReviewHandler(deps *Dependencies) *CompanyReviewHandler {
	return &CompanyReviewHandler{logger: deps.Logger, svc: deps.CompanyReviews, resp: deps.responder()}
}

func companyReviewInput(req dto.CompanyReviewRequest) service.CompanyReviewInput {
	return service.CompanyReviewInput{
		CompanyID:         req.CompanyID,
		Rating:            req.Rating,
		Title:             req.Title,
		Content:           req.Content,
		Pros:              req.Pros,
		Cons:              req.Cons,
		Position:          req.Position,
		WorkPeriod:        req.WorkPeriod,
		IsCurrentEmployee: req.IsCurrentEmployee,
	}
}

func (h *CompanyReviewHandler) Create(c *gin.Context) {
	var req dto.CompanyReviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	review, err := h.svc.Create(c.Request.Context(), userID(c), companyReviewInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "review created", Data: review})
}

func (h *CompanyReviewHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.List(c.Request.Context(), pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

func (h *CompanyReviewHandler) ListMine(c *gin.Context) {
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.ListMine(c.Request.Context(), userID(c), pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// ListByCompany handles GET /company-reviews/company/:companyId
func (h *CompanyReviewHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.resp.pathID(c, "companyId")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	res, err := h.svc.ListByCompany(c.Request.Context(), userID(c), companyID, pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsListResponse[model.CompanyReview, model.CompanyReviewStats]{
		ListResponse: listResponse(&res.Page),
		Statistics:   res.Stats,
	})
}

func (h *CompanyReviewHandler) Update(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CompanyReviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	review, err := h.svc.Update(c.Request.Context(), id, userID(c), companyReviewInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "review updated", Data: review})
}

func (h *CompanyReviewHandler) Delete(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "review deleted"})
}

// InterviewReviewHandler handles reviews of interview experiences
type InterviewReviewHandler struct {
	logger *slog.Logger
	svc    InterviewReviewService
	resp   responder
}

func NewInterviewReviewHandler(deps *Dependencies) *InterviewReviewHandler {
	return &InterviewReviewHandler{logger: deps.Logger, svc: deps.InterviewReviews, resp: deps.responder()}
}

func interviewReviewInput(req dto.InterviewReviewRequest) service.InterviewReviewInput {
	return service.InterviewReviewInput{
		CompanyID:     req.CompanyID,
		Difficulty:    req.Difficulty,
		Result:        req.Result,
		Position:      req.Position,
		InterviewDate: req.InterviewDate,
		Process:       req.Process,
		Questions:     req.Questions,
		Content:       req.Content,
		Tips:          req.Tips,
	}
}

func (h *InterviewReviewHandler) Create(c *gin.Context) {
	var req dto.InterviewReviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	review, err := h.svc.Create(c.Request.Context(), userID(c), interviewReviewInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "interview review created", Data: review})
}

func (h *InterviewReviewHandler) List(c *gin.Context) {
	var q dto.ListInterviewReviewsQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.List(c.Request.Context(), userID(c), model.InterviewReviewFilter{
		CompanyID:  q.CompanyID,
		Position:   q.Position,
		Difficulty: q.Difficulty,
		Result:     q.Result,
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit},
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// ListByCompany handles GET /interview-reviews/company/:companyId
func (h *InterviewReviewHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.resp.pathID(c, "companyId")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	res, err := h.svc.ListByCompany(c.Request.Context(), companyID, c.Query("position"), pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsListResponse[model.InterviewReview, model.InterviewReviewStats]{
		ListResponse: listResponse(&res.Page),
		Statistics:   res.Stats,
	})
}

func (h *InterviewReviewHandler) Update(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.InterviewReviewRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	review, err := h.svc.Update(c.Request.Context(), id, userID(c), interviewReviewInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "interview review updated", Data: review})
}

func (h *InterviewReviewHandler) Delete(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "interview review deleted"})
}
