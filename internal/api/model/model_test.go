package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected Salary
		wantErr  bool
	}{
		{
			name:     "bytes",
			src:      []byte(`{"min":3000,"max":5000,"currency":"KRW"}`),
			expected: Salary{Min: 3000, Max: 5000, Currency: "KRW"},
		},
		{
			name:     "string",
			src:      `{"min":1,"max":2,"currency":"USD"}`,
			expected: Salary{Min: 1, Max: 2, Currency: "USD"},
		},
		{
			name:     "null",
			src:      nil,
			expected: Salary{},
		},
		{
			name:    "unsupported type",
			src:     42,
			wantErr: true,
		},
		{
			name:    "invalid json",
			src:     []byte(`{"min":`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Salary
			err := s.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestSalary_Value(t *testing.T) {
	v, err := Salary{Min: 10, Max: 20, Currency: "KRW"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":10,"max":20,"currency":"KRW"}`, string(v.([]byte)))
	assert.Equal(t, "jsonb", Salary{}.GormDataType())
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       Pagination
		total      int
		offset     int
		totalPages int
	}{
		{name: "first page", page: Pagination{Page: 1, Limit: 10}, total: 0, offset: 0, totalPages: 0},
		{name: "partial last page", page: Pagination{Page: 3, Limit: 10}, total: 21, offset: 20, totalPages: 3},
		{name: "exact fit", page: Pagination{Page: 2, Limit: 5}, total: 10, offset: 5, totalPages: 2},
		{name: "page below one", page: Pagination{Page: 0, Limit: 5}, total: 1, offset: 0, totalPages: 1},
		{name: "no limit", page: Pagination{Page: 1}, total: 7, offset: 0, totalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.page.Offset())
			assert.Equal(t, tt.totalPages, tt.page.TotalPages(tt.total))
		})
	}
}

func TestAllModels(t *testing.T) {
	models := AllModels()
	require.Len(t, models, 12)

	// referenced tables come before the tables that point at them
	assert.IsType(t, &User{}, models[0])
	assert.IsType(t, &ApplicationStatusHistory{}, models[len(models)-1])
}
