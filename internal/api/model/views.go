package model

import (
	"time"

	"github.com/lib/pq"
)

// Pagination is a 1-based page request
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed for total rows
func (p Pagination) TotalPages(total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// ApplicationDetail is an application joined with its job and company
type ApplicationDetail struct {
	Application
	JobTitle       string `db:"job_title" json:"jobTitle"`
	CompanyID      int64  `db:"company_id" json:"companyId"`
	CompanyName    string `db:"company_name" json:"companyName"`
	CompanyOwnerID int64  `db:"company_owner_id" json:"-"`
}

type ApplicationFilter struct {
	UserID int64
	Status string
	SortBy string
	Order  string
	Pagination
}

// JobListItem is a job with its company name
type JobListItem struct {
	Job
	CompanyName    string `db:"company_name" json:"companyName"`
	CompanyOwnerID int64  `db:"company_owner_id" json:"-"`
}

type JobFilter struct {
	Location    string
	MaxCareer   *int
	MinSalary   *int64
	MaxSalary   *int64
	Skills      []string
	Keyword     string
	CompanyName string
	JobType     string
	SortBy      string
	Order       string
	Pagination
}

// CompanyWithStats is a company row with its posting count
type CompanyWithStats struct {
	Company
	JobCount int `db:"job_count" json:"jobCount"`
}

// CompanyDetail is the cached company view
type CompanyDetail struct {
	Company
	Jobs     []Job `json:"jobs"`
	JobCount int   `json:"jobCount"`
}

type CompanyFilter struct {
	Keyword  string
	Industry string
	SortBy   string
	Order    string
	Pagination
}

// BookmarkItem carries a short summary of the bookmarked entity
type BookmarkItem struct {
	Bookmark
	TargetTitle *string `db:"target_title" json:"targetTitle,omitempty"`
	CompanyName *string `db:"company_name" json:"companyName,omitempty"`
	Industry    *string `db:"industry" json:"industry,omitempty"`
}

type BookmarkFilter struct {
	UserID int64
	Type   string
	Pagination
}

type KeywordCount struct {
	Keyword string `db:"keyword" json:"keyword"`
	Count   int    `db:"count" json:"count"`
}

type CompanyReviewStats struct {
	AverageRating float64 `db:"average_rating" json:"averageRating"`
	TotalReviews  int     `db:"total_reviews" json:"totalReviews"`
}

type InterviewReviewFilter struct {
	CompanyID  int64
	Position   string
	Difficulty int
	Result     string
	Pagination
}

type InterviewReviewStats struct {
	AverageDifficulty float64 `db:"average_difficulty" json:"averageDifficulty"`
	TotalReviews      int     `db:"total_reviews" json:"totalReviews"`
	PassedReviews     int     `db:"passed_reviews" json:"-"`
	AcceptanceRate    float64 `db:"-" json:"acceptanceRate"`
}

// InterviewDetail is an interview with the job it was scheduled for
type InterviewDetail struct {
	Interview
	JobTitle    string `db:"job_title" json:"jobTitle"`
	CompanyName string `db:"company_name" json:"companyName"`
	UserName    string `db:"user_name" json:"userName"`
}

// InterviewFilter selects interviews of one applicant (UserID) or one
// company (CompanyID)
type InterviewFilter struct {
	UserID    int64
	CompanyID int64
	Status    string
	Day       *time.Time
	Pagination
}

// GroupMember is one application inside an applicant group
type GroupMember struct {
	GroupID       int64          `db:"group_id" json:"-"`
	ApplicationID int64          `db:"application_id" json:"applicationId"`
	UserID        int64          `db:"user_id" json:"userId"`
	UserName      string         `db:"user_name" json:"userName"`
	Career        int            `db:"career" json:"career"`
	SkillSet      pq.StringArray `db:"skill_set" json:"skillSet"`
	Status        string         `db:"status" json:"status"`
	JobTitle      string         `db:"job_title" json:"jobTitle"`
}

// ApplicantGroupDetail is a group with its members
type ApplicantGroupDetail struct {
	ApplicantGroup
	Members []GroupMember `json:"members"`
}

type GroupStatistics struct {
	TotalApplicants    int            `json:"totalApplicants"`
	AverageCareer      float64        `json:"averageCareer"`
	StatusDistribution map[string]int `json:"statusDistribution"`
	SkillDistribution  map[string]int `json:"skillDistribution"`
}
