package service

import (
	"context"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

// The store interfaces below are implemented by *storage.Storage. Each
// service only sees the queries it runs.

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, company *model.Company) error
	GetCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	CompanyNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]model.CompanyWithStats, int, error)
	UpdateCompany(ctx context.Context, company *model.Company) error
	DeleteCompany(ctx context.Context, id int64) error
	ListJobsByCompany(ctx context.Context, companyID int64) ([]model.Job, error)
}

type JobStore interface {
	GetCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	CreateJob(ctx context.Context, job *model.Job) error
	GetJob(ctx context.Context, id int64) (*model.JobListItem, error)
	ListJobs(ctx context.Context, filter model.JobFilter) ([]model.JobListItem, int, error)
	IncrementJobViews(ctx context.Context, id int64) error
	ListRelatedJobs(ctx context.Context, companyID, excludeID int64, limit int) ([]model.Job, error)
	UpdateJob(ctx context.Context, job *model.Job) error
	CloseJob(ctx context.Context, id int64, at time.Time) error
}

type ApplicationStore interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	FindActiveApplication(ctx context.Context, userID, jobID int64) (*model.Application, error)
	GetOpenJob(ctx context.Context, id int64, now time.Time) (*model.JobListItem, error)
	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplicationDetail(ctx context.Context, id int64) (*model.ApplicationDetail, error)
	GetUserApplication(ctx context.Context, id, userID int64) (*model.ApplicationDetail, error)
	ListUserApplications(ctx context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, int, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error)
	WithdrawApplication(ctx context.Context, id, userID int64, at time.Time) (bool, error)
	UpdateCoverLetter(ctx context.Context, id, userID int64, coverLetter string, at time.Time) (bool, error)
	ListStatusHistory(ctx context.Context, applicationID int64) ([]model.ApplicationStatusHistory, error)
}

type BookmarkStore interface {
	BookmarkTargetExists(ctx context.Context, target domain.BookmarkTarget) (bool, error)
	ToggleBookmark(ctx context.Context, userID int64, target domain.BookmarkTarget, at time.Time) (*model.Bookmark, error)
	BookmarkExists(ctx context.Context, userID int64, target domain.BookmarkTarget) (bool, error)
	ListBookmarks(ctx context.Context, filter model.BookmarkFilter) ([]model.BookmarkItem, int, error)
}

type SearchHistoryStore interface {
	CreateSearch(ctx context.Context, search *model.SearchHistory) error
	ListSearches(ctx context.Context, userID int64, page model.Pagination) ([]model.SearchHistory, int, error)
	PopularKeywords(ctx context.Context, userID int64, limit int) ([]model.KeywordCount, error)
	DeleteSearch(ctx context.Context, id, userID int64) (bool, error)
	ClearSearches(ctx context.Context, userID int64) (int64, error)
}

type CompanyReviewStore interface {
	CompanyExists(ctx context.Context, id int64) (bool, error)
	CreateCompanyReview(ctx context.Context, review *model.CompanyReview) error
	GetCompanyReview(ctx context.Context, id int64) (*model.CompanyReview, error)
	CompanyReviewExists(ctx context.Context, userID, companyID int64) (bool, error)
	ListCompanyReviews(ctx context.Context, companyID, userID int64, page model.Pagination) ([]model.CompanyReview, int, error)
	CompanyReviewStats(ctx context.Context, companyID int64) (*model.CompanyReviewStats, error)
	UpdateCompanyReview(ctx context.Context, review *model.CompanyReview) error
	DeleteCompanyReview(ctx context.Context, id int64) error
}

type InterviewReviewStore interface {
	GetCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	CreateInterviewReview(ctx context.Context, review *model.InterviewReview) error
	GetInterviewReview(ctx context.Context, id int64) (*model.InterviewReview, error)
	ListInterviewReviews(ctx context.Context, filter model.InterviewReviewFilter) ([]model.InterviewReview, int, error)
	InterviewReviewStats(ctx context.Context, filter model.InterviewReviewFilter) (*model.InterviewReviewStats, error)
	UpdateInterviewReview(ctx context.Context, review *model.InterviewReview) error
	DeleteInterviewReview(ctx context.Context, id int64) error
}

type InterviewStore interface {
	GetCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	GetApplicationDetail(ctx context.Context, id int64) (*model.ApplicationDetail, error)
	ScheduleInterview(ctx context.Context, interview *model.Interview) (domain.ApplicationStatus, error)
	GetInterview(ctx context.Context, id int64) (*model.InterviewDetail, error)
	ListUserInterviews(ctx context.Context, filter model.InterviewFilter) ([]model.InterviewDetail, int, error)
	ListCompanyInterviews(ctx context.Context, filter model.InterviewFilter) ([]model.InterviewDetail, int, error)
	UpdateInterviewStatus(ctx context.Context, id int64, status string, notes *string, appStatus domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error)
	RescheduleInterview(ctx context.Context, interview *model.Interview) error
}

type ApplicantGroupStore interface {
	GetCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	CreateApplicantGroup(ctx context.Context, group *model.ApplicantGroup) error
	GetApplicantGroup(ctx context.Context, id int64) (*model.ApplicantGroup, error)
	ListApplicantGroups(ctx context.Context, companyID int64, page model.Pagination) ([]model.ApplicantGroupDetail, int, error)
	AddGroupMembers(ctx context.Context, groupID, companyID int64, applicationIDs []int64, at time.Time) (int, int, error)
	ListGroupMembers(ctx context.Context, groupID int64) ([]model.GroupMember, error)
	UpdateGroupMetadata(ctx context.Context, groupID int64, metadata []byte, at time.Time) error
}

// EventPublisher delivers application lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ApplicationEvent) error
}

// CompanyCache stores company detail views. Get returns nil, nil on a miss.
type CompanyCache interface {
	Get(ctx context.Context, id int64) (*model.CompanyDetail, error)
	Set(ctx context.Context, detail *model.CompanyDetail) error
	Invalidate(ctx context.Context, id int64) error
}

// TokenIssuer signs and verifies bearer tokens
type TokenIssuer interface {
	Issue(userID int64) (*auth.TokenPair, error)
	ParseRefresh(token string) (int64, error)
}

// SearchRecorder stores the query behind a list request in the caller's history
type SearchRecorder interface {
	Record(ctx context.Context, userID int64, keyword string, filters map[string]any)
}
