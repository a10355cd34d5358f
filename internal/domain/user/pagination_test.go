package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int64
		limit      int64
		totalPages int64
	}{
		{name: "exact pages", total: 20, page: 1, limit: 10, totalPages: 2},
		{name: "partial last page", total: 21, page: 1, limit: 10, totalPages: 3},
		{name: "empty table", total: 0, page: 1, limit: 10, totalPages: 0},
		{name: "single record", total: 1, page: 1, limit: 10, totalPages: 1},
		{name: "zero limit", total: 50, page: 1, limit: 0, totalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}
