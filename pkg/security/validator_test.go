package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectError bool
	}{
		{name: "empty query", query: "", expectError: false},
		{name: "plain name", query: "john", expectError: false},
		{name: "email fragment", query: "example.com", expectError: false},
		{name: "plus addressing", query: "john.doe+test@example.com", expectError: false},
		{name: "union injection", query: "john UNION SELECT * FROM users", expectError: true},
		{name: "tautology injection", query: "john OR 1=1", expectError: true},
		{name: "drop table", query: "john; DROP TABLE users", expectError: true},
		{name: "sql comment", query: "john --", expectError: true},
		{name: "script tag", query: "<script>alert('x')</script>", expectError: true},
		{name: "too long", query: strings.Repeat("a", MaxSearchQueryLength+1), expectError: true},
		{name: "disallowed characters", query: "john&doe", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ValidateSearchQuery(tt.query)
			if tt.expectError {
				require.Error(t, err)
				assert.Empty(t, out)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `john\%`, EscapeLike("john%"))
	assert.Equal(t, `jane\_test`, EscapeLike("jane_test"))
	assert.Equal(t, "admin", EscapeLike("admin"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
}
