package dto

type CreateGroupRequest struct {
	CompanyID   int64   `json:"companyId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type AddApplicantsRequest struct {
	ApplicationIDs []int64 `json:"applicationIds" binding:"required,min=1"`
}

type MembershipResponse struct {
	Message         string `json:"message"`
	GroupID         int64  `json:"groupId"`
	Added           int    `json:"added"`
	TotalApplicants int    `json:"totalApplicants"`
}
