//go:build unit

package password_test

import (
	"strings"
	"testing"

	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	require.NoError(t, password.ComparePassword(hash, "password123"))

	err = password.ComparePassword(hash, "wrong-password")
	assert.True(t, errs.Is(err, password.ErrComparisonFailed))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "7 chars rejected", input: strings.Repeat("a", 7)},
		{name: "8 chars accepted", input: strings.Repeat("a", 8), ok: true},
		{name: "72 chars accepted", input: strings.Repeat("a", 72), ok: true},
		{name: "73 chars rejected", input: strings.Repeat("a", 73)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := password.Validate(tc.input)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, password.ErrInvalidPassword))
		})
	}
}
