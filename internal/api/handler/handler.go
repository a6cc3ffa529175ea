package handler

import (
	"context"
	"log/slog"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
)

// The interfaces below are satisfied by the types in the service package.

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	UpdateProfile(ctx context.Context, userID int64, in service.ProfileInput) (*model.User, error)
}

type JobService interface {
	List(ctx context.Context, q service.JobQuery) (*service.Page[model.JobListItem], error)
	Get(ctx context.Context, id int64) (*service.JobDetail, error)
	Create(ctx context.Context, userID int64, in service.JobInput) (*model.Job, error)
	Update(ctx context.Context, id, userID int64, in service.JobInput) (*model.Job, error)
	Close(ctx context.Context, id, userID int64) error
}

type ApplicationService interface {
	Apply(ctx context.Context, userID, jobID int64, coverLetter string) (*service.ApplyResult, error)
	UpdateStatus(ctx context.Context, applicationID, requesterID int64, status string) (*service.StatusChange, error)
	Withdraw(ctx context.Context, applicationID, userID int64) (*service.WithdrawResult, error)
	Update(ctx context.Context, applicationID, userID int64, coverLetter string) (*model.ApplicationDetail, error)
	ListMine(ctx context.Context, userID int64, q service.ApplicationQuery) (*service.Page[model.ApplicationDetail], error)
	Get(ctx context.Context, applicationID, userID int64) (*model.ApplicationDetail, error)
	History(ctx context.Context, applicationID, userID int64) ([]model.ApplicationStatusHistory, error)
}

type BookmarkService interface {
	Toggle(ctx context.Context, userID int64, targetType string, targetID int64) (*service.ToggleResult, error)
	List(ctx context.Context, userID int64, targetType string, page model.Pagination) (*service.Page[model.BookmarkItem], error)
	Check(ctx context.Context, userID int64, targetType string, targetID int64) (bool, error)
}

type SearchHistoryService interface {
	Save(ctx context.Context, userID int64, keyword string, filters map[string]any) (*model.SearchHistory, error)
	List(ctx context.Context, userID int64, page model.Pagination) (*service.SearchPage, error)
	Delete(ctx context.Context, id, userID int64) error
	Clear(ctx context.Context, userID int64) (int64, error)
}

type CompanyService interface {
	Create(ctx context.Context, ownerID int64, in service.CompanyInput) (*model.Company, error)
	List(ctx context.Context, userID int64, q service.CompanyQuery) (*service.Page[model.CompanyWithStats], error)
	Get(ctx context.Context, id int64) (*model.CompanyDetail, error)
	Update(ctx context.Context, id, userID int64, in service.CompanyInput) (*model.Company, error)
	Delete(ctx context.Context, id, userID int64) error
}

type CompanyReviewService interface {
	Create(ctx context.Context, userID int64, in service.CompanyReviewInput) (*model.CompanyReview, error)
	List(ctx context.Context, page model.Pagination) (*service.Page[model.CompanyReview], error)
	ListMine(ctx context.Context, userID int64, page model.Pagination) (*service.Page[model.CompanyReview], error)
	ListByCompany(ctx context.Context, userID, companyID int64, page model.Pagination) (*service.CompanyReviewPage, error)
	Update(ctx context.Context, id, userID int64, in service.CompanyReviewInput) (*model.CompanyReview, error)
	Delete(ctx context.Context, id, userID int64) error
}

type InterviewReviewService interface {
	Create(ctx context.Context, userID int64, in service.InterviewReviewInput) (*model.InterviewReview, error)
	List(ctx context.Context, userID int64, filter model.InterviewReviewFilter) (*service.Page[model.InterviewReview], error)
	ListByCompany(ctx context.Context, companyID int64, position string, page model.Pagination) (*service.InterviewReviewPage, error)
	Update(ctx context.Context, id, userID int64, in service.InterviewReviewInput) (*model.InterviewReview, error)
	Delete(ctx context.Context, id, userID int64) error
}

type InterviewService interface {
	Schedule(ctx context.Context, requesterID int64, in service.ScheduleInput) (*model.Interview, error)
	ListMine(ctx context.Context, userID int64, status string, page model.Pagination) (*service.Page[model.InterviewDetail], error)
	ListByCompany(ctx context.Context, requesterID int64, filter model.InterviewFilter) (*service.Page[model.InterviewDetail], error)
	UpdateStatus(ctx context.Context, id, requesterID int64, status string, notes *string) (*model.InterviewDetail, error)
	Reschedule(ctx context.Context, id, requesterID int64, in service.RescheduleInput) (*model.InterviewDetail, error)
}

type ApplicantGroupService interface {
	Create(ctx context.Context, requesterID, companyID int64, name string, description *string) (*model.ApplicantGroup, error)
	ListByCompany(ctx context.Context, requesterID, companyID int64, page model.Pagination) (*service.Page[model.ApplicantGroupDetail], error)
	AddApplicants(ctx context.Context, groupID, requesterID int64, applicationIDs []int64) (*service.MembershipChange, error)
	Statistics(ctx context.Context, groupID, requesterID int64) (*model.GroupStatistics, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger *slog.Logger
	// ExposeErrors adds the underlying cause to 500 responses; off in production
	ExposeErrors bool

	Auth             AuthService
	Jobs             JobService
	Applications     ApplicationService
	Bookmarks        BookmarkService
	Searches         SearchHistoryService
	Companies        CompanyService
	CompanyReviews   CompanyReviewService
	InterviewReviews InterviewReviewService
	Interviews       InterviewService
	ApplicantGroups  ApplicantGroupService
}

func (d *Dependencies) responder() responder {
	return responder{logger: d.Logger, exposeErrors: d.ExposeErrors}
}
