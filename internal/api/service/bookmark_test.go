package service

import (
	"context"
	"testing"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkFixture(t *testing.T) (*BookmarkService, *memStore) {
	t.Helper()

	store := newMemStore()
	store.addUser(applicantID, "applicant@example.com")
	store.addCompany(companyID, ownerID, "Acme")
	store.addJob(openJobID, companyID, testNow.AddDate(0, 1, 0))

	svc := NewBookmarkService(store, discardLogger())
	svc.now = fixedClock(testNow)
	return svc, store
}

func TestBookmarkService_Toggle_Validation(t *testing.T) {
	tests := []struct {
		name       string
		targetType string
		targetID   int64
		wantKind   domain.Kind
	}{
		{name: "unknown type", targetType: "resume", targetID: openJobID, wantKind: domain.KindValidation},
		{name: "empty type", targetType: "", targetID: openJobID, wantKind: domain.KindValidation},
		{name: "zero id", targetType: "job", targetID: 0, wantKind: domain.KindValidation},
		{name: "negative id", targetType: "company", targetID: -4, wantKind: domain.KindValidation},
		{name: "missing job", targetType: "job", targetID: 999, wantKind: domain.KindNotFound},
		{name: "missing company", targetType: "company", targetID: 999, wantKind: domain.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newBookmarkFixture(t)

			_, err := svc.Toggle(context.Background(), applicantID, tt.targetType, tt.targetID)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Zero(t, store.mutations)
		})
	}
}

func TestBookmarkService_Toggle_IsAnInvolution(t *testing.T) {
	targets := []struct {
		kind string
		id   int64
	}{
		{kind: "job", id: openJobID},
		{kind: "company", id: companyID},
	}

	for _, target := range targets {
		t.Run(target.kind, func(t *testing.T) {
			svc, store := newBookmarkFixture(t)
			ctx := context.Background()

			added, err := svc.Toggle(ctx, applicantID, target.kind, target.id)
			require.NoError(t, err)
			assert.True(t, added.Added)
			require.NotNil(t, added.Bookmark)
			assert.Equal(t, target.kind, added.Bookmark.TargetType)
			assert.Equal(t, target.id, added.Bookmark.TargetID)
			assert.Len(t, store.bookmarks, 1)

			removed, err := svc.Toggle(ctx, applicantID, target.kind, target.id)
			require.NoError(t, err)
			assert.False(t, removed.Added)
			assert.Nil(t, removed.Bookmark)
			assert.Empty(t, store.bookmarks)
		})
	}
}

func TestBookmarkService_SameIDDifferentType(t *testing.T) {
	svc, store := newBookmarkFixture(t)
	store.addCompany(openJobID, ownerID, "Shares an id with the job")
	ctx := context.Background()

	_, err := svc.Toggle(ctx, applicantID, "job", openJobID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, applicantID, "company", openJobID)
	require.NoError(t, err)

	assert.Len(t, store.bookmarks, 2)

	isJob, err := svc.Check(ctx, applicantID, "job", openJobID)
	require.NoError(t, err)
	assert.True(t, isJob)
}

func TestBookmarkService_ListAndCheck(t *testing.T) {
	svc, _ := newBookmarkFixture(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, applicantID, "job", openJobID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, applicantID, "company", companyID)
	require.NoError(t, err)

	all, err := svc.List(ctx, applicantID, "", model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, 20, all.Pagination.Limit)

	jobs, err := svc.List(ctx, applicantID, "job", model.Pagination{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, jobs.Items, 1)
	assert.Equal(t, "job", jobs.Items[0].TargetType)

	_, err = svc.List(ctx, applicantID, "resume", model.Pagination{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	ok, err := svc.Check(ctx, applicantID, "company", companyID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Check(ctx, strangerID, "company", companyID)
	require.NoError(t, err)
	assert.False(t, ok)
}
