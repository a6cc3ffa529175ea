package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       domain.Kind
		isDomain   bool
		detailKey  string
		detailWant any
	}{
		{
			name:       "unique violation",
			err:        &pq.Error{Code: "23505", Constraint: "idx_applications_active"},
			kind:       domain.KindDuplicate,
			isDomain:   true,
			detailKey:  "constraint",
			detailWant: "idx_applications_active",
		},
		{
			name:       "foreign key violation",
			err:        &pq.Error{Code: "23503", Constraint: "fk_jobs_company"},
			kind:       domain.KindValidation,
			isDomain:   true,
			detailKey:  "constraint",
			detailWant: "fk_jobs_company",
		},
		{
			name:       "string too long",
			err:        &pq.Error{Code: "22001", Column: "title"},
			kind:       domain.KindValidation,
			isDomain:   true,
			detailKey:  "field",
			detailWant: "title",
		},
		{
			name:       "check violation",
			err:        &pq.Error{Code: "23514", Constraint: "chk_company_reviews_rating"},
			kind:       domain.KindValidation,
			isDomain:   true,
			detailKey:  "constraint",
			detailWant: "chk_company_reviews_rating",
		},
		{
			name:       "not null violation",
			err:        fmt.Errorf("wrapped: %w", &pq.Error{Code: "23502", Column: "name"}),
			kind:       domain.KindValidation,
			isDomain:   true,
			detailKey:  "field",
			detailWant: "name",
		},
		{
			name: "other pq error",
			err:  &pq.Error{Code: "40001"},
			kind: domain.KindUnexpected,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			kind: domain.KindUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate("op", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))

			de, ok := domain.AsError(err)
			assert.Equal(t, tt.isDomain, ok)
			if ok {
				assert.Equal(t, tt.detailWant, de.Details[tt.detailKey])
			} else {
				assert.Contains(t, err.Error(), "op:")
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestTranslate_NoRowsAndNil(t *testing.T) {
	assert.NoError(t, translate("op", nil))
	assert.ErrorIs(t, translate("op", sql.ErrNoRows), domain.ErrRecordNotFound)
	assert.ErrorIs(t, translate("op", fmt.Errorf("scan: %w", sql.ErrNoRows)), domain.ErrRecordNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("x")))
}

func TestOrderBy(t *testing.T) {
	columns := map[string]string{"appliedAt": "a.applied_at", "status": "a.status"}

	assert.Equal(t, "a.status ASC", orderBy(columns, "status", "ASC", "a.applied_at"))
	assert.Equal(t, "a.applied_at DESC", orderBy(columns, "appliedAt", "DESC", "a.id"))
	assert.Equal(t, "a.id DESC", orderBy(columns, "1; DROP TABLE users", "", "a.id"))
}
