package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatusSets(t *testing.T) {
	tests := []struct {
		status   ApplicationStatus
		editable bool
		settable bool
	}{
		{ApplicationPending, true, true},
		{ApplicationReviewing, true, true},
		{ApplicationInterviewScheduled, false, true},
		{ApplicationAccepted, false, true},
		{ApplicationRejected, false, true},
		{ApplicationWithdrawn, false, false},
		{ApplicationStatus("ARCHIVED"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.editable, tt.status.IsEditable())
			assert.Equal(t, tt.settable, tt.status.IsCompanySettable())
		})
	}
}

func TestParseApplicationStatus(t *testing.T) {
	st, ok := ParseApplicationStatus("WITHDRAWN")
	assert.True(t, ok)
	assert.Equal(t, ApplicationWithdrawn, st)

	_, ok = ParseApplicationStatus("pending")
	assert.False(t, ok)
}

func TestStatusSetsAreCopies(t *testing.T) {
	set := EditableStatuses()
	set[0] = ApplicationAccepted

	assert.True(t, ApplicationPending.IsEditable())
	assert.Equal(t, []string{"PENDING", "REVIEWING"}, StatusStrings(EditableStatuses()))

	all := ApplicationStatuses()
	assert.Contains(t, all, ApplicationWithdrawn)
	assert.NotContains(t, CompanySettableStatuses(), ApplicationWithdrawn)
	all[0] = ApplicationAccepted
	assert.Equal(t, ApplicationPending, ApplicationStatuses()[0])
}

func TestParseBookmarkTarget(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		id       int64
		expected BookmarkTarget
		errKind  Kind
	}{
		{name: "job", kind: "job", id: 3, expected: JobTarget{ID: 3}},
		{name: "company", kind: "company", id: 9, expected: CompanyTarget{ID: 9}},
		{name: "unknown type", kind: "user", id: 1, errKind: KindValidation},
		{name: "uppercase type", kind: "JOB", id: 1, errKind: KindValidation},
		{name: "zero id", kind: "job", id: 0, errKind: KindValidation},
		{name: "negative id", kind: "company", id: -4, errKind: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ParseBookmarkTarget(tt.kind, tt.id)
			if tt.expected == nil {
				require.Error(t, err)
				assert.Equal(t, tt.errKind, KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, target)
			assert.Equal(t, TargetType(tt.kind), target.Type())
			assert.Equal(t, tt.id, target.TargetID())
		})
	}
}

func TestParseTargetType(t *testing.T) {
	for _, ok := range []string{"", "job", "company"} {
		_, err := ParseTargetType(ok)
		assert.NoError(t, err, ok)
	}

	_, err := ParseTargetType("review")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestError(t *testing.T) {
	t.Run("details accumulate", func(t *testing.T) {
		err := NewConflict("cannot withdraw").
			With("currentStatus", ApplicationAccepted).
			With("cancelableStatuses", EditableStatuses())

		assert.Equal(t, KindConflict, err.Kind)
		assert.Len(t, err.Details, 2)
		assert.Equal(t, "conflict: cannot withdraw", err.Error())
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("apply: %w", NewDuplicate("already applied"))

		assert.Equal(t, KindDuplicate, KindOf(wrapped))
		de, ok := AsError(wrapped)
		require.True(t, ok)
		assert.Equal(t, "already applied", de.Message)
	})

	t.Run("unexpected keeps cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewUnexpected("failed to load job", cause)

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, KindUnexpected, KindOf(err))
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("plain errors are unexpected", func(t *testing.T) {
		assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	})

	t.Run("not found detection", func(t *testing.T) {
		assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrRecordNotFound)))
		assert.True(t, IsNotFound(NewNotFound("missing")))
		assert.False(t, IsNotFound(NewValidation("bad")))
	})
}

func TestLocations(t *testing.T) {
	assert.Len(t, Locations(), 17)
	assert.True(t, IsLocation("서울"))
	assert.False(t, IsLocation("Seoul"))
}
