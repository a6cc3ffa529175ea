package domain

import "slices"

// ApplicationStatus is the lifecycle state of an application
type ApplicationStatus string

const (
	ApplicationPending            ApplicationStatus = "PENDING"
	ApplicationReviewing          ApplicationStatus = "REVIEWING"
	ApplicationInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationAccepted           ApplicationStatus = "ACCEPTED"
	ApplicationRejected           ApplicationStatus = "REJECTED"
	ApplicationWithdrawn          ApplicationStatus = "WITHDRAWN"
)

var (
	allApplicationStatuses = []ApplicationStatus{
		ApplicationPending,
		ApplicationReviewing,
		ApplicationInterviewScheduled,
		ApplicationAccepted,
		ApplicationRejected,
		ApplicationWithdrawn,
	}

	// applicant may edit or withdraw only before an interview is arranged
	editableStatuses = []ApplicationStatus{
		ApplicationPending,
		ApplicationReviewing,
	}

	companySettableStatuses = []ApplicationStatus{
		ApplicationPending,
		ApplicationReviewing,
		ApplicationInterviewScheduled,
		ApplicationAccepted,
		ApplicationRejected,
	}
)

// ParseApplicationStatus accepts any known status
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	st := ApplicationStatus(s)
	return st, slices.Contains(allApplicationStatuses, st)
}

// IsEditable reports whether the applicant can still change or cancel the application
func (s ApplicationStatus) IsEditable() bool {
	return slices.Contains(editableStatuses, s)
}

// IsCompanySettable reports whether a company administrator may set this status
func (s ApplicationStatus) IsCompanySettable() bool {
	return slices.Contains(companySettableStatuses, s)
}

// ApplicationStatuses lists every status, WITHDRAWN included
func ApplicationStatuses() []ApplicationStatus {
	return slices.Clone(allApplicationStatuses)
}

func EditableStatuses() []ApplicationStatus {
	return slices.Clone(editableStatuses)
}

func CompanySettableStatuses() []ApplicationStatus {
	return slices.Clone(companySettableStatuses)
}

// StatusStrings converts statuses for SQL parameters and response details
func StatusStrings(statuses []ApplicationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Job posting states and employment types
const (
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
	JobStatusDraft  = "DRAFT"

	JobTypeFullTime   = "FULL_TIME"
	JobTypePartTime   = "PART_TIME"
	JobTypeContract   = "CONTRACT"
	JobTypeInternship = "INTERNSHIP"
)

var (
	jobStatuses = []string{JobStatusActive, JobStatusClosed, JobStatusDraft}
	jobTypes    = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}
)

func IsJobStatus(s string) bool { return slices.Contains(jobStatuses, s) }
func IsJobType(s string) bool { return slices.Contains(jobTypes, s) }

// Interview states and formats
const (
	InterviewScheduled   = "SCHEDULED"
	InterviewCompleted   = "COMPLETED"
	InterviewCancelled   = "CANCELLED"
	InterviewRescheduled = "RESCHEDULED"

	InterviewTypeOnline  = "ONLINE"
	InterviewTypeOffline = "OFFLINE"
	InterviewTypePhone   = "PHONE"
)

var (
	interviewStatuses = []string{InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled}
	interviewTypes    = []string{InterviewTypeOnline, InterviewTypeOffline, InterviewTypePhone}
)

func IsInterviewStatus(s string) bool { return slices.Contains(interviewStatuses, s) }
func IsInterviewType(s string) bool { return slices.Contains(interviewTypes, s) }

// Interview review outcomes
const (
	ReviewResultPassed  = "PASSED"
	ReviewResultFailed  = "FAILED"
	ReviewResultPending = "PENDING"
)

func IsReviewResult(s string) bool {
	return s == ReviewResultPassed || s == ReviewResultFailed || s == ReviewResultPending
}

// Applicant group states
const (
	GroupStatusActive   = "ACTIVE"
	GroupStatusArchived = "ARCHIVED"
)

// Locations a company can be registered in
var locations = []string{
	"서울", "부산", "대구", "인천", "광주", "대전",
	"울산", "세종", "경기", "강원", "충북", "충남",
	"전북", "전남", "경북", "경남", "제주",
}

func IsLocation(s string) bool { return slices.Contains(locations, s) }

func Locations() []string { return slices.Clone(locations) }
