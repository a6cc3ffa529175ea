package dto

import "time"

type ScheduleInterviewRequest struct {
	ApplicationID int64     `json:"applicationId" binding:"required"`
	ScheduleDate  time.Time `json:"scheduleDate" binding:"required"`
	Type          string    `json:"type"`
	Location      *string   `json:"location"`
	InterviewLink *string   `json:"interviewLink"`
	Notes         *string   `json:"notes"`
}

type InterviewStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

type RescheduleInterviewRequest struct {
	ScheduleDate  time.Time `json:"scheduleDate" binding:"required"`
	Type          *string   `json:"type"`
	Location      *string   `json:"location"`
	InterviewLink *string   `json:"interviewLink"`
	Notes         *string   `json:"notes"`
}

type MyInterviewsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type CompanyInterviewsQuery struct {
	Status string `form:"status"`
	Date   string `form:"date"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
