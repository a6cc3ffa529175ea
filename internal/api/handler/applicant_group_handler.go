package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/dto"
)

type ApplicantGroupHandler struct {
	logger *slog.Logger
	svc    ApplicantGroupService
	resp   responder
}

func NewApplicantGroupHandler(deps *Dependencies) *ApplicantGroupHandler {
	return &ApplicantGroupHandler{logger: deps.Logger, svc: deps.ApplicantGroups, resp: deps.responder()}
}

// Create handles POST /applicant-groups
func (h *ApplicantGroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	group, err := h.svc.Create(c.Request.Context(), userID(c), req.CompanyID, req.Name, req.Description)
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Message: "applicant group created", Data: group})
}

// ListByCompany handles GET /applicant-groups/company/:companyId
func (h *ApplicantGroupHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.resp.pathID(c, "companyId")
	if !ok {
		return
	}
	var q dto.PageQuery
	if !h.resp.bindQuery(c, &q) {
		return
	}

	page, err := h.svc.ListByCompany(c.Request.Context(), userID(c), companyID, pagination(q))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(page))
}

// AddApplicants handles POST /applicant-groups/:groupId/applicants
func (h *ApplicantGroupHandler) AddApplicants(c *gin.Context) {
	groupID, ok := h.resp.pathID(c, "groupId")
	if !ok {
		return
	}
	var req dto.AddApplicantsRequest
	if !h.resp.bindJSON(c, &req) {
		return
	}

	change, err := h.svc.AddApplicants(c.Request.Context(), groupID, userID(c), req.ApplicationIDs)
	if err != nil {
		h.resp.error(c, err)
		return
	}

	h.logger.Info("Applicants grouped",
		slog.Int64("group_id", groupID),
		slog.Int("added", change.Added),
	)
	c.JSON(http.StatusOK, dto.MembershipResponse{
		Message:         "applicants added",
		GroupID:         change.GroupID,
		Added:           change.Added,
		TotalApplicants: change.TotalApplicants,
	})
}

// Statistics handles GET /applicant-groups/:groupId/statistics
func (h *ApplicantGroupHandler) Statistics(c *gin.Context) {
	groupID, ok := h.resp.pathID(c, "groupId")
	if !ok {
		return
	}

	stats, err := h.svc.Statistics(c.Request.Context(), groupID, userID(c))
	if err != nil {
		h.resp.error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
