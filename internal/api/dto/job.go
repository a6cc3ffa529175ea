package dto

import (
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

type JobRequest struct {
	CompanyID      int64         `json:"companyId"`
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	RequiredSkills []string      `json:"requiredSkills"`
	RequiredCareer *int          `json:"requiredCareer" binding:"omitempty,min=0"`
	Salary         *model.Salary `json:"salary"`
	Location       *string       `json:"location"`
	JobType        *string       `json:"jobType"`
	Deadline       *time.Time    `json:"deadline"`
	Status         *string       `json:"status"`
}

type ListJobsQuery struct {
	Location    string `form:"location"`
	MaxCareer   *int   `form:"career"`
	MinSalary   *int64 `form:"minSalary"`
	MaxSalary   *int64 `form:"maxSalary"`
	Skills      string `form:"skills"`
	Keyword     string `form:"keyword"`
	CompanyName string `form:"companyName"`
	JobType     string `form:"jobType"`
	SortBy      string `form:"sortBy"`
	Order       string `form:"order"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type JobDetailResponse struct {
	model.JobListItem
	RelatedJobs []model.Job `json:"relatedJobs"`
}
