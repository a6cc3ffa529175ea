package service

import (
	"context"
	"log/slog"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

// MaxCoverLetterLength is counted in characters, not bytes
const MaxCoverLetterLength = 5000

var applicationSortKeys = []string{"appliedAt", "status", "updatedAt"}

// ApplicationService implements the applicant and company sides of the
// application lifecycle
type ApplicationService struct {
	store     ApplicationStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewApplicationService(store ApplicationStore, publisher EventPublisher, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ApplyResult is a freshly submitted application
type ApplyResult struct {
	Application model.Application
	JobTitle    string
	CompanyName string
}

type StatusChange struct {
	ApplicationID  int64
	PreviousStatus domain.ApplicationStatus
	NewStatus      domain.ApplicationStatus
	UpdatedAt      time.Time
}

type WithdrawResult struct {
	ApplicationID int64
	CompanyName   string
	WithdrawnAt   time.Time
}

type ApplicationQuery struct {
	Status string
	Page   int
	Limit  int
	SortBy string
	Order  string
}

func checkCoverLetter(coverLetter string) error {
	if n := utf8.RuneCountInString(coverLetter); n > MaxCoverLetterLength {
		return domain.NewValidation("cover letter must not exceed 5000 characters").
			With("maxLength", MaxCoverLetterLength).
			With("currentLength", n)
	}
	return nil
}

// Apply submits an application for jobID on behalf of userID
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID int64, coverLetter string) (*ApplyResult, error) {
	if jobID <= 0 {
		return nil, domain.NewValidation("jobId is required")
	}
	if err := checkCoverLetter(coverLetter); err != nil {
		return nil, err
	}

	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, unexpected("failed to look up user", err)
	}
	if !exists {
		return nil, domain.NewNotFound("user not found")
	}

	existing, err := s.store.FindActiveApplication(ctx, userID, jobID)
	switch {
	case err == nil:
		return nil, domain.NewDuplicate("you have already applied to this job").
			With("applicationId", existing.ID).
			With("appliedAt", existing.AppliedAt)
	case !domain.IsNotFound(err):
		return nil, unexpected("failed to check existing application", err)
	}

	now := s.now()

	job, err := s.store.GetOpenJob(ctx, jobID, now)
	if err != nil {
		return nil, notFoundOr(err, "job not found or no longer accepting applications", "failed to load job")
	}

	app := model.Application{
		UserID:      userID,
		JobID:       jobID,
		Status:      string(domain.ApplicationPending),
		CoverLetter: coverLetter,
		AppliedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateApplication(ctx, &app); err != nil {
		return nil, unexpected("failed to create application", err)
	}

	s.logger.Info("Application submitted",
		slog.Int64("application_id", app.ID),
		slog.Int64("user_id", userID),
		slog.Int64("job_id", jobID),
	)

	s.publish(ctx, domain.EventApplicationSubmitted, &app, "", userID)

	return &ApplyResult{
		Application: app,
		JobTitle:    job.Title,
		CompanyName: job.CompanyName,
	}, nil
}

// UpdateStatus lets the owner of the job's company move the application to
// any company-settable status
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, requesterID int64, status string) (*StatusChange, error) {
	next, ok := domain.ParseApplicationStatus(status)
	if !ok || !next.IsCompanySettable() {
		return nil, domain.NewValidation("invalid application status").
			With("status", status).
			With("allowed", domain.StatusStrings(domain.CompanySettableStatuses()))
	}

	app, err := s.store.GetApplicationDetail(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}

	if app.CompanyOwnerID != requesterID {
		return nil, domain.NewForbidden("only the company administrator can change this application")
	}

	now := s.now()
	previous, err := s.store.UpdateApplicationStatus(ctx, applicationID, next, now)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to update application status")
	}

	app.Status = string(next)
	s.publish(ctx, domain.EventApplicationStatusChanged, &app.Application, previous, requesterID)

	return &StatusChange{
		ApplicationID:  applicationID,
		PreviousStatus: previous,
		NewStatus:      next,
		UpdatedAt:      now,
	}, nil
}

// Withdraw cancels an application that is still pending or under review
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, userID int64) (*WithdrawResult, error) {
	app, err := s.store.GetUserApplication(ctx, applicationID, userID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}

	current := domain.ApplicationStatus(app.Status)
	if !current.IsEditable() {
		return nil, notCancelable(current)
	}

	now := s.now()
	ok, err := s.store.WithdrawApplication(ctx, applicationID, userID, now)
	if err != nil {
		return nil, unexpected("failed to withdraw application", err)
	}
	if !ok {
		return nil, domain.NewConflict("application status changed, it can no longer be withdrawn").
			With("cancelableStatuses", domain.StatusStrings(domain.EditableStatuses()))
	}

	app.Status = string(domain.ApplicationWithdrawn)
	s.publish(ctx, domain.EventApplicationWithdrawn, &app.Application, current, userID)

	return &WithdrawResult{
		ApplicationID: applicationID,
		CompanyName:   app.CompanyName,
		WithdrawnAt:   now,
	}, nil
}

func notCancelable(current domain.ApplicationStatus) error {
	return domain.NewConflict("application cannot be changed in its current status").
		With("currentStatus", current).
		With("cancelableStatuses", domain.StatusStrings(domain.EditableStatuses()))
}

// Update replaces the cover letter. An empty letter keeps the current one.
func (s *ApplicationService) Update(ctx context.Context, applicationID, userID int64, coverLetter string) (*model.ApplicationDetail, error) {
	if err := checkCoverLetter(coverLetter); err != nil {
		return nil, err
	}

	app, err := s.store.GetUserApplication(ctx, applicationID, userID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}

	current := domain.ApplicationStatus(app.Status)
	if !current.IsEditable() {
		return nil, notCancelable(current)
	}

	if coverLetter == "" {
		coverLetter = app.CoverLetter
	}

	now := s.now()
	ok, err := s.store.UpdateCoverLetter(ctx, applicationID, userID, coverLetter, now)
	if err != nil {
		return nil, unexpected("failed to update application", err)
	}
	if !ok {
		return nil, domain.NewConflict("application status changed, it can no longer be edited").
			With("cancelableStatuses", domain.StatusStrings(domain.EditableStatuses()))
	}

	app.CoverLetter = coverLetter
	app.UpdatedAt = now
	return app, nil
}

// ListMine returns the caller's applications. An empty page is reported as
// not found.
func (s *ApplicationService) ListMine(ctx context.Context, userID int64, q ApplicationQuery) (*Page[model.ApplicationDetail], error) {
	filter, err := applicationFilter(userID, q)
	if err != nil {
		return nil, err
	}

	items, total, err := s.store.ListUserApplications(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to list applications", err)
	}
	if len(items) == 0 {
		return nil, domain.NewNotFound("no applications found")
	}

	return newPage(items, total, filter.Pagination), nil
}

func applicationFilter(userID int64, q ApplicationQuery) (model.ApplicationFilter, error) {
	filter := model.ApplicationFilter{
		UserID:     userID,
		SortBy:     q.SortBy,
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit},
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Page < 1 {
		return filter, domain.NewValidation("page must be 1 or greater").With("page", q.Page)
	}

	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit < 1 || filter.Limit > maxPageLimit {
		return filter, domain.NewValidation("limit must be between 1 and 50").With("limit", q.Limit)
	}

	if filter.SortBy == "" {
		filter.SortBy = "appliedAt"
	}
	if !slices.Contains(applicationSortKeys, filter.SortBy) {
		return filter, domain.NewValidation("invalid sort field").
			With("sortBy", q.SortBy).
			With("allowed", applicationSortKeys)
	}

	order, ok := normalizeOrder(q.Order)
	if !ok {
		return filter, domain.NewValidation("order must be ASC or DESC").With("order", q.Order)
	}
	filter.Order = order

	if q.Status != "" {
		if _, ok := domain.ParseApplicationStatus(q.Status); !ok {
			return filter, domain.NewValidation("invalid application status").
				With("status", q.Status).
				With("allowed", domain.StatusStrings(domain.ApplicationStatuses()))
		}
		filter.Status = q.Status
	}

	return filter, nil
}

// Get returns one of the caller's applications
func (s *ApplicationService) Get(ctx context.Context, applicationID, userID int64) (*model.ApplicationDetail, error) {
	app, err := s.store.GetUserApplication(ctx, applicationID, userID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}
	return app, nil
}

// History returns the recorded status changes of one of the caller's applications
func (s *ApplicationService) History(ctx context.Context, applicationID, userID int64) ([]model.ApplicationStatusHistory, error) {
	if _, err := s.Get(ctx, applicationID, userID); err != nil {
		return nil, err
	}

	history, err := s.store.ListStatusHistory(ctx, applicationID)
	if err != nil {
		return nil, unexpected("failed to load application history", err)
	}
	if history == nil {
		history = []model.ApplicationStatusHistory{}
	}
	return history, nil
}

// publish runs after the write committed; a failure is logged, never returned
func (s *ApplicationService) publish(ctx context.Context, eventType string, app *model.Application, previous domain.ApplicationStatus, actorID int64) {
	event := newApplicationEvent(eventType, app, previous, actorID, s.now())

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish application event",
			slog.String("event_id", event.EventID),
			slog.String("type", eventType),
			slog.Int64("application_id", app.ID),
			slog.String("error", err.Error()),
		)
	}
}

func newApplicationEvent(eventType string, app *model.Application, previous domain.ApplicationStatus, actorID int64, at time.Time) domain.ApplicationEvent {
	return domain.ApplicationEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		ApplicationID:  app.ID,
		UserID:         app.UserID,
		JobID:          app.JobID,
		PreviousStatus: previous,
		NewStatus:      domain.ApplicationStatus(app.Status),
		ActorID:        actorID,
		OccurredAt:     at,
	}
}
