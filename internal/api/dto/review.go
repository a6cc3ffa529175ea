package dto

import "time"

type CompanyReviewRequest struct {
	CompanyID         int64   `json:"companyId"`
	Rating            *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Title             *string `json:"title"`
	Content           *string `json:"content"`
	Pros              *string `json:"pros"`
	Cons              *string `json:"cons"`
	Position          *string `json:"position"`
	WorkPeriod        *string `json:"workPeriod"`
	IsCurrentEmployee *bool   `json:"isCurrentEmployee"`
}

type InterviewReviewRequest struct {
	CompanyID     int64      `json:"companyId"`
	Difficulty    *int       `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Result        *string    `json:"result"`
	Position      *string    `json:"position"`
	InterviewDate *time.Time `json:"interviewDate"`
	Process       *string    `json:"process"`
	Questions     *string    `json:"questions"`
	Content       *string    `json:"content"`
	Tips          *string    `json:"tips"`
}

type ListInterviewReviewsQuery struct {
	CompanyID  int64  `form:"companyId"`
	Position   string `form:"position"`
	Difficulty int    `form:"difficulty"`
	Result     string `form:"result"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// StatsListResponse is a list envelope with aggregate statistics
type StatsListResponse[T any, S any] struct {
	ListResponse[T]
	Statistics S `json:"statistics"`
}
