package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

type InterviewService struct {
	store     InterviewStore
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewInterviewService(store InterviewStore, publisher EventPublisher, logger *slog.Logger) *InterviewService {
	return &InterviewService{store: store, publisher: publisher, logger: logger, now: time.Now}
}

type ScheduleInput struct {
	ApplicationID int64
	ScheduleDate  time.Time
	Type          string
	Location      *string
	InterviewLink *string
	Notes         *string
}

type RescheduleInput struct {
	ScheduleDate  time.Time
	Type          *string
	Location      *string
	InterviewLink *string
	Notes         *string
}

// Schedule books an interview for an application to one of the requester's
// companies and moves the application to INTERVIEW_SCHEDULED
func (s *InterviewService) Schedule(ctx context.Context, requesterID int64, in ScheduleInput) (*model.Interview, error) {
	if in.ApplicationID <= 0 {
		return nil, domain.NewValidation("applicationId is required")
	}
	if in.ScheduleDate.IsZero() {
		return nil, domain.NewValidation("scheduleDate is required")
	}
	if in.Type == "" {
		in.Type = domain.InterviewTypeOffline
	}
	if !domain.IsInterviewType(in.Type) {
		return nil, domain.NewValidation("invalid interview type").With("type", in.Type)
	}

	app, err := s.store.GetApplicationDetail(ctx, in.ApplicationID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}
	if app.CompanyOwnerID != requesterID {
		return nil, domain.NewForbidden("only the company administrator can schedule interviews")
	}
	if !canScheduleInterview(domain.ApplicationStatus(app.Status)) {
		return nil, domain.NewConflict("application is closed for interviews").
			With("applicationId", app.ID).
			With("currentStatus", app.Status)
	}

	now := s.now()
	if !in.ScheduleDate.After(now) {
		return nil, domain.NewValidation("scheduleDate must be in the future").With("scheduleDate", in.ScheduleDate)
	}

	interview := model.Interview{
		ApplicationID: app.ID,
		CompanyID:     app.CompanyID,
		UserID:        app.UserID,
		ScheduleDate:  in.ScheduleDate,
		Type:          in.Type,
		Location:      in.Location,
		InterviewLink: in.InterviewLink,
		Status:        domain.InterviewScheduled,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	previous, err := s.store.ScheduleInterview(ctx, &interview)
	if err != nil {
		return nil, unexpected("failed to schedule interview", err)
	}

	app.Status = string(domain.ApplicationInterviewScheduled)
	s.publish(ctx, domain.EventApplicationInterviewScheduled, &app.Application, previous, requesterID)

	s.logger.Info("Interview scheduled",
		slog.Int64("interview_id", interview.ID),
		slog.Int64("application_id", app.ID),
	)
	return &interview, nil
}

// canScheduleInterview rejects applications that were withdrawn or already decided.
// INTERVIEW_SCHEDULED stays open for further rounds.
func canScheduleInterview(status domain.ApplicationStatus) bool {
	switch status {
	case domain.ApplicationWithdrawn, domain.ApplicationAccepted, domain.ApplicationRejected:
		return false
	}
	return true
}

// ListMine returns one page of the applicant's interviews, soonest first
func (s *InterviewService) ListMine(ctx context.Context, userID int64, status string, page model.Pagination) (*Page[model.InterviewDetail], error) {
	if status != "" && !domain.IsInterviewStatus(status) {
		return nil, domain.NewValidation("invalid interview status").With("status", status)
	}

	filter := model.InterviewFilter{
		UserID:     userID,
		Status:     status,
		Pagination: normalizePage(page, defaultPageLimit),
	}

	interviews, total, err := s.store.ListUserInterviews(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to list interviews", err)
	}
	return newPage(interviews, total, filter.Pagination), nil
}

// ListByCompany returns one page of a company's interviews for its administrator
func (s *InterviewService) ListByCompany(ctx context.Context, requesterID int64, filter model.InterviewFilter) (*Page[model.InterviewDetail], error) {
	company, err := s.store.GetCompanyByID(ctx, filter.CompanyID)
	if err != nil {
		return nil, notFoundOr(err, "company not found", "failed to load company")
	}
	if company.OwnerID != requesterID {
		return nil, domain.NewForbidden("only the company administrator can view its interviews")
	}
	if filter.Status != "" && !domain.IsInterviewStatus(filter.Status) {
		return nil, domain.NewValidation("invalid interview status").With("status", filter.Status)
	}

	filter.UserID = 0
	filter.Pagination = normalizePage(filter.Pagination, defaultPageLimit)

	interviews, total, err := s.store.ListCompanyInterviews(ctx, filter)
	if err != nil {
		return nil, unexpected("failed to list interviews", err)
	}
	return newPage(interviews, total, filter.Pagination), nil
}

// UpdateStatus is open to the applicant and the company administrator.
// Completing an interview sends the application back to REVIEWING.
func (s *InterviewService) UpdateStatus(ctx context.Context, id, requesterID int64, status string, notes *string) (*model.InterviewDetail, error) {
	if !domain.IsInterviewStatus(status) {
		return nil, domain.NewValidation("invalid interview status").With("status", status)
	}

	interview, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "interview not found", "failed to load interview")
	}

	if interview.UserID != requesterID {
		company, err := s.store.GetCompanyByID(ctx, interview.CompanyID)
		if err != nil {
			return nil, unexpected("failed to load company", err)
		}
		if company.OwnerID != requesterID {
			return nil, domain.NewForbidden("not allowed to change this interview")
		}
	}

	var appStatus domain.ApplicationStatus
	if status == domain.InterviewCompleted {
		appStatus = domain.ApplicationReviewing
	}

	now := s.now()
	previous, err := s.store.UpdateInterviewStatus(ctx, id, status, notes, appStatus, now)
	if err != nil {
		return nil, notFoundOr(err, "interview not found", "failed to update interview")
	}

	interview.Status = status
	if notes != nil {
		interview.Notes = notes
	}
	interview.UpdatedAt = now

	if appStatus != "" {
		app, err := s.store.GetApplicationDetail(ctx, interview.ApplicationID)
		if err != nil {
			s.logger.Warn("Failed to load application for event",
				slog.Int64("application_id", interview.ApplicationID),
				slog.String("error", err.Error()),
			)
		} else {
			s.publish(ctx, domain.EventApplicationStatusChanged, &app.Application, previous, requesterID)
		}
	}

	return interview, nil
}

// Reschedule moves the interview to a new slot; company administrator only
func (s *InterviewService) Reschedule(ctx context.Context, id, requesterID int64, in RescheduleInput) (*model.InterviewDetail, error) {
	if in.ScheduleDate.IsZero() {
		return nil, domain.NewValidation("scheduleDate is required")
	}
	if in.Type != nil && !domain.IsInterviewType(*in.Type) {
		return nil, domain.NewValidation("invalid interview type").With("type", *in.Type)
	}

	interview, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "interview not found", "failed to load interview")
	}

	company, err := s.store.GetCompanyByID(ctx, interview.CompanyID)
	if err != nil {
		return nil, unexpected("failed to load company", err)
	}
	if company.OwnerID != requesterID {
		return nil, domain.NewForbidden("only the company administrator can reschedule interviews")
	}

	interview.ScheduleDate = in.ScheduleDate
	if in.Type != nil {
		interview.Type = *in.Type
	}
	if in.Location != nil {
		interview.Location = in.Location
	}
	if in.InterviewLink != nil {
		interview.InterviewLink = in.InterviewLink
	}
	if in.Notes != nil {
		interview.Notes = in.Notes
	}
	interview.Status = domain.InterviewRescheduled
	interview.UpdatedAt = s.now()

	if err := s.store.RescheduleInterview(ctx, &interview.Interview); err != nil {
		return nil, unexpected("failed to reschedule interview", err)
	}
	return interview, nil
}

func (s *InterviewService) publish(ctx context.Context, eventType string, app *model.Application, previous domain.ApplicationStatus, actorID int64) {
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
