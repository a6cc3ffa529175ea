package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

const (
	applicantID = int64(1)
	ownerID     = int64(2)
	strangerID  = int64(3)
	companyID   = int64(10)
	openJobID   = int64(20)
	expiredJob  = int64(21)
)

func newApplicationFixture(t *testing.T) (*ApplicationService, *memStore, *recordingPublisher) {
	t.Helper()

	store := newMemStore()
	store.addUser(applicantID, "applicant@example.com")
	store.addUser(ownerID, "owner@example.com")
	store.addUser(strangerID, "stranger@example.com")
	store.addCompany(companyID, ownerID, "Acme")
	store.addJob(openJobID, companyID, testNow.Add(72*time.Hour))
	store.addJob(expiredJob, companyID, testNow.Add(-time.Hour))

	pub := &recordingPublisher{}
	svc := NewApplicationService(store, pub, discardLogger())
	svc.now = fixedClock(testNow)
	return svc, store, pub
}

func TestApplicationService_Apply(t *testing.T) {
	tests := []struct {
		name      string
		userID    int64
		jobID     int64
		letter    string
		setup     func(*memStore)
		wantKind  domain.Kind
		wantError bool
	}{
		{name: "success", userID: applicantID, jobID: openJobID, letter: "hello"},
		{name: "cover letter of exactly 5000 characters", userID: applicantID, jobID: openJobID, letter: strings.Repeat("가", 5000)},
		{name: "cover letter of 5001 characters", userID: applicantID, jobID: openJobID, letter: strings.Repeat("가", 5001), wantError: true, wantKind: domain.KindValidation},
		{name: "missing job id", userID: applicantID, jobID: 0, wantError: true, wantKind: domain.KindValidation},
		{name: "unknown user", userID: 999, jobID: openJobID, wantError: true, wantKind: domain.KindNotFound},
		{name: "unknown job", userID: applicantID, jobID: 404, wantError: true, wantKind: domain.KindNotFound},
		{name: "deadline passed", userID: applicantID, jobID: expiredJob, wantError: true, wantKind: domain.KindNotFound},
		{
			name:   "closed job",
			userID: applicantID,
			jobID:  openJobID,
			setup: func(m *memStore) {
				m.jobs[openJobID].Status = domain.JobStatusClosed
			},
			wantError: true,
			wantKind:  domain.KindNotFound,
		},
		{
			name:   "store failure",
			userID: applicantID,
			jobID:  openJobID,
			setup: func(m *memStore) {
				m.fail = errStoreDown
			},
			wantError: true,
			wantKind:  domain.KindUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, pub := newApplicationFixture(t)
			if tt.setup != nil {
				tt.setup(store)
			}

			res, err := svc.Apply(context.Background(), tt.userID, tt.jobID, tt.letter)

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Zero(t, store.mutations)
				assert.Empty(t, pub.events)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, res.Application.ID)
			assert.Equal(t, string(domain.ApplicationPending), res.Application.Status)
			assert.Equal(t, testNow, res.Application.AppliedAt)
			assert.Equal(t, "Acme", res.CompanyName)
			assert.Equal(t, "Backend Engineer", res.JobTitle)
			assert.Equal(t, []string{domain.EventApplicationSubmitted}, pub.types())
		})
	}
}

func TestApplicationService_Apply_Duplicate(t *testing.T) {
	svc, store, _ := newApplicationFixture(t)
	ctx := context.Background()

	first, err := svc.Apply(ctx, applicantID, openJobID, "")
	require.NoError(t, err)
	before := store.mutations

	_, err = svc.Apply(ctx, applicantID, openJobID, "again")
	require.Error(t, err)

	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindDuplicate, de.Kind)
	assert.Equal(t, first.Application.ID, de.Details["applicationId"])
	assert.Equal(t, testNow, de.Details["appliedAt"])
	assert.Equal(t, before, store.mutations)
}

func TestApplicationService_Apply_AfterWithdrawal(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)
	ctx := context.Background()

	first, err := svc.Apply(ctx, applicantID, openJobID, "")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, first.Application.ID, applicantID)
	require.NoError(t, err)

	second, err := svc.Apply(ctx, applicantID, openJobID, "second try")
	require.NoError(t, err)
	assert.NotEqual(t, first.Application.ID, second.Application.ID)
}

func TestApplicationService_Apply_PublishFailureDoesNotFail(t *testing.T) {
	svc, store, pub := newApplicationFixture(t)
	pub.err = errStoreDown

	res, err := svc.Apply(context.Background(), applicantID, openJobID, "")
	require.NoError(t, err)
	assert.Contains(t, store.apps, res.Application.ID)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		requester    int64
		status       string
		appID        int64
		wantKind     domain.Kind
		wantError    bool
		wantPrevious domain.ApplicationStatus
	}{
		{name: "owner sets reviewing", requester: ownerID, status: "REVIEWING", appID: 500, wantPrevious: domain.ApplicationPending},
		{name: "owner sets accepted", requester: ownerID, status: "ACCEPTED", appID: 500, wantPrevious: domain.ApplicationPending},
		{name: "withdrawn is not settable", requester: ownerID, status: "WITHDRAWN", appID: 500, wantError: true, wantKind: domain.KindValidation},
		{name: "unknown status", requester: ownerID, status: "HIRED", appID: 500, wantError: true, wantKind: domain.KindValidation},
		{name: "missing application", requester: ownerID, status: "REVIEWING", appID: 404, wantError: true, wantKind: domain.KindNotFound},
		{name: "not the company owner", requester: strangerID, status: "REVIEWING", appID: 500, wantError: true, wantKind: domain.KindForbidden},
		{name: "applicant cannot set own status", requester: applicantID, status: "ACCEPTED", appID: 500, wantError: true, wantKind: domain.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, pub := newApplicationFixture(t)
			store.addApplication(500, applicantID, openJobID, domain.ApplicationPending)

			change, err := svc.UpdateStatus(context.Background(), tt.appID, tt.requester, tt.status)

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Equal(t, string(domain.ApplicationPending), store.apps[500].Status)
				assert.Zero(t, store.mutations)
				assert.Empty(t, pub.events)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrevious, change.PreviousStatus)
			assert.Equal(t, domain.ApplicationStatus(tt.status), change.NewStatus)
			assert.Equal(t, tt.status, store.apps[500].Status)
			require.NotNil(t, store.apps[500].LastStatusUpdateAt)
			assert.Equal(t, testNow, *store.apps[500].LastStatusUpdateAt)

			require.Len(t, pub.events, 1)
			assert.Equal(t, domain.EventApplicationStatusChanged, pub.events[0].Type)
			assert.Equal(t, tt.wantPrevious, pub.events[0].PreviousStatus)
			assert.Equal(t, ownerID, pub.events[0].ActorID)
		})
	}
}

func TestApplicationService_Withdraw(t *testing.T) {
	tests := []struct {
		name      string
		status    domain.ApplicationStatus
		userID    int64
		wantKind  domain.Kind
		wantError bool
	}{
		{name: "pending", status: domain.ApplicationPending, userID: applicantID},
		{name: "reviewing", status: domain.ApplicationReviewing, userID: applicantID},
		{name: "interview scheduled", status: domain.ApplicationInterviewScheduled, userID: applicantID, wantError: true, wantKind: domain.KindConflict},
		{name: "accepted", status: domain.ApplicationAccepted, userID: applicantID, wantError: true, wantKind: domain.KindConflict},
		{name: "rejected", status: domain.ApplicationRejected, userID: applicantID, wantError: true, wantKind: domain.KindConflict},
		{name: "already withdrawn", status: domain.ApplicationWithdrawn, userID: applicantID, wantError: true, wantKind: domain.KindConflict},
		{name: "someone else's application", status: domain.ApplicationPending, userID: strangerID, wantError: true, wantKind: domain.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, pub := newApplicationFixture(t)
			store.addApplication(500, applicantID, openJobID, tt.status)

			res, err := svc.Withdraw(context.Background(), 500, tt.userID)

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Equal(t, string(tt.status), store.apps[500].Status)
				assert.Zero(t, store.mutations)
				assert.Empty(t, pub.events)

				if tt.wantKind == domain.KindConflict {
					de, _ := domain.AsError(err)
					assert.Equal(t, tt.status, de.Details["currentStatus"])
					assert.Equal(t, []string{"PENDING", "REVIEWING"}, de.Details["cancelableStatuses"])
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(500), res.ApplicationID)
			assert.Equal(t, "Acme", res.CompanyName)
			assert.Equal(t, string(domain.ApplicationWithdrawn), store.apps[500].Status)
			assert.Equal(t, []string{domain.EventApplicationWithdrawn}, pub.types())
		})
	}
}

func TestApplicationService_Update(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ApplicationStatus
		userID     int64
		letter     string
		wantLetter string
		wantKind   domain.Kind
		wantError  bool
	}{
		{name: "replace letter", status: domain.ApplicationPending, userID: applicantID, letter: "updated", wantLetter: "updated"},
		{name: "empty keeps letter", status: domain.ApplicationReviewing, userID: applicantID, letter: "", wantLetter: "original"},
		{name: "exactly 5000", status: domain.ApplicationPending, userID: applicantID, letter: strings.Repeat("a", 5000), wantLetter: strings.Repeat("a", 5000)},
		{name: "5001 characters", status: domain.ApplicationPending, userID: applicantID, letter: strings.Repeat("a", 5001), wantError: true, wantKind: domain.KindValidation},
		{name: "after acceptance", status: domain.ApplicationAccepted, userID: applicantID, letter: "late", wantError: true, wantKind: domain.KindConflict},
		{name: "not owner", status: domain.ApplicationPending, userID: strangerID, letter: "x", wantError: true, wantKind: domain.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newApplicationFixture(t)
			store.addApplication(500, applicantID, openJobID, tt.status)

			app, err := svc.Update(context.Background(), 500, tt.userID, tt.letter)

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Equal(t, "original", store.apps[500].CoverLetter)
				assert.Zero(t, store.mutations)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLetter, app.CoverLetter)
			assert.Equal(t, "Backend Engineer", app.JobTitle)
			assert.Equal(t, testNow, app.UpdatedAt)
			assert.Equal(t, tt.wantLetter, store.apps[500].CoverLetter)
		})
	}
}

func TestApplicationService_ListMine(t *testing.T) {
	svc, store, _ := newApplicationFixture(t)
	store.addApplication(500, applicantID, openJobID, domain.ApplicationPending)
	store.addApplication(501, applicantID, expiredJob, domain.ApplicationRejected)

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.ListMine(context.Background(), applicantID, ApplicationQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, model.Pagination{Page: 1, Limit: 10}, page.Pagination)
		assert.Equal(t, 1, page.TotalPages())
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := svc.ListMine(context.Background(), applicantID, ApplicationQuery{Status: "REJECTED"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(501), page.Items[0].ID)
	})

	t.Run("unknown status lists every status", func(t *testing.T) {
		_, err := svc.ListMine(context.Background(), applicantID, ApplicationQuery{Status: "HIRED"})
		de, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, domain.KindValidation, de.Kind)
		assert.Equal(t,
			[]string{"PENDING", "REVIEWING", "INTERVIEW_SCHEDULED", "ACCEPTED", "REJECTED", "WITHDRAWN"},
			de.Details["allowed"])
	})

	t.Run("withdrawn is a valid filter", func(t *testing.T) {
		_, err := svc.ListMine(context.Background(), applicantID, ApplicationQuery{Status: "WITHDRAWN"})
		assert.NotEqual(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("empty result is not found", func(t *testing.T) {
		_, err := svc.ListMine(context.Background(), strangerID, ApplicationQuery{})
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	invalid := []struct {
		name  string
		query ApplicationQuery
	}{
		{name: "negative page", query: ApplicationQuery{Page: -1}},
		{name: "limit above 50", query: ApplicationQuery{Limit: 51}},
		{name: "negative limit", query: ApplicationQuery{Limit: -5}},
		{name: "unknown sort", query: ApplicationQuery{SortBy: "salary"}},
		{name: "bad order", query: ApplicationQuery{Order: "sideways"}},
		{name: "unknown status", query: ApplicationQuery{Status: "HIRED"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListMine(context.Background(), applicantID, tt.query)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestApplicationService_History(t *testing.T) {
	svc, store, _ := newApplicationFixture(t)
	store.addApplication(500, applicantID, openJobID, domain.ApplicationReviewing)
	store.history[500] = []model.ApplicationStatusHistory{
		{ID: 1, ApplicationID: 500, EventType: domain.EventApplicationSubmitted, NewStatus: "PENDING"},
		{ID: 2, ApplicationID: 500, EventType: domain.EventApplicationStatusChanged, NewStatus: "REVIEWING"},
	}

	history, err := svc.History(context.Background(), 500, applicantID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = svc.History(context.Background(), 500, strangerID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// apply, review, then withdraw from the applicant's side
func TestApplicationService_Lifecycle(t *testing.T) {
	svc, store, pub := newApplicationFixture(t)
	ctx := context.Background()

	applied, err := svc.Apply(ctx, applicantID, openJobID, "letter")
	require.NoError(t, err)
	id := applied.Application.ID

	change, err := svc.UpdateStatus(ctx, id, ownerID, "REVIEWING")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, change.PreviousStatus)

	edited, err := svc.Update(ctx, id, applicantID, "better letter")
	require.NoError(t, err)
	assert.Equal(t, "better letter", edited.CoverLetter)

	_, err = svc.Withdraw(ctx, id, applicantID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ApplicationWithdrawn), store.apps[id].Status)

	// nothing editable remains
	_, err = svc.Update(ctx, id, applicantID, "too late")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	assert.Equal(t, []string{
		domain.EventApplicationSubmitted,
		domain.EventApplicationStatusChanged,
		domain.EventApplicationWithdrawn,
	}, pub.types())

	for _, e := range pub.events {
		assert.Equal(t, id, e.ApplicationID)
		assert.Equal(t, openJobID, e.JobID)
		assert.NotEmpty(t, e.EventID)
	}
}
