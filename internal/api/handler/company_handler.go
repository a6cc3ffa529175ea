package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

type CompanyHandler struct {
	logger *slog.Logger
	svc    CompanyService
	resp   responder
}

func NewCompanyHandler(deps *Dependencies) *CompanyHandler {
	return &CompanyHandler{logger: deps.Logger, svc: deps.Companies, resp: deps.responder()}
}

func companyInput(req dto.CompanyRequest) service.CompanyInput {
	return service.CompanyInput{
		Name:          req.Name,
		Industry:      req.Industry,
		Size:          req.Size,
		Location:      req.Location,
		EmployeeCount: req.EmployeeCount,
		FoundedYear:   req.FoundedYear,
		CompanyURL:    req.CompanyURL,
	}
}

// Create handles POST /companies; the caller becomes the administrator
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CompanyRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	company, err := h.svc.Create(c.Request.Context(), userID(c), companyInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("Company created",
		slog.Int64("company_id", company.ID),
		slog.Int64("owner_id", company.OwnerID),
	)
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "company created", Data: company})
}

// List handles GET /companies
func (h *CompanyHandler) List(c *gin.Context) {
	var q dto.ListCompaniesQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.List(c.Request.Context(), userID(c), service.CompanyQuery{
		Keyword:    q.Keyword,
		Industry:   q.Industry,
		SortBy:     q.SortBy,
		Order:      q.Order,
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit},
	})
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// Get handles GET /companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Update handles PUT /companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CompanyRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	company, err := h.svc.Update(c.Request.Context(), id, userID(c), companyInput(req))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Message: "company updated", Data: company})
}

// Delete handles DELETE /companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.resp.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("Company deleted", slog.Int64("company_id", id))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "company deleted"})
}
