package dto

import (
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
)

type ApplyRequest struct {
	JobID       int64  `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
}

type UpdateApplicationRequest struct {
	CoverLetter string `json:"coverLetter"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListApplicationsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
}

type ApplyResponse struct {
	Message       string    `json:"message"`
	ApplicationID int64     `json:"applicationId"`
	JobTitle      string    `json:"jobTitle"`
	CompanyName   string    `json:"companyName"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"appliedAt"`
}

type StatusChangeResponse struct {
	Message        string                   `json:"message"`
	ApplicationID  int64                    `json:"applicationId"`
	PreviousStatus domain.ApplicationStatus `json:"previousStatus"`
	NewStatus      domain.ApplicationStatus `json:"newStatus"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type WithdrawResponse struct {
	Message       string    `json:"message"`
	ApplicationID int64     `json:"applicationId"`
	CompanyName   string    `json:"companyName"`
	WithdrawnAt   time.Time `json:"withdrawnAt"`
}

type UpdateApplicationResponse struct {
	Message       string    `json:"message"`
	ApplicationID int64     `json:"applicationId"`
	JobTitle      string    `json:"jobTitle"`
	CompanyName   string    `json:"companyName"`
	CoverLetter   string    `json:"coverLetter"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
