//go:build unit

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"parking-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, driver string) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", driver)
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_NAME", "d")
}

func TestRunUsage(t *testing.T) {
	setEnv(t, "memory")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"drop-everything"}},
		{name: "unknown flag", args: []string{"seed-slots", "-force"}},
		{name: "create-user without password", args: []string{"create-user", "-username", "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out)
			require.ErrorIs(t, err, errUsage)
			assert.True(t, errs.Is(err, errUsage))
			assert.Empty(t, out.String())
		})
	}
}

func TestRunRefusesMemoryStore(t *testing.T) {
	setEnv(t, "memory")

	for _, args := range [][]string{
		{"seed-slots", "-count", "3"},
		{"create-user", "-username", "root", "-password", "password123"},
		{"complete-bookings"},
		{"migrate"},
	} {
		t.Run(args[0], func(t *testing.T) {
			err := run(context.Background(), args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, errs.Is(err, errUsage))
			assert.Contains(t, err.Error(), "STORE_DRIVER")
			assert.Contains(t, strings.Join(errs.ExtractStackLines(err, 0), "\n"), "stack trace")
		})
	}
}

func TestCompleteBookingsRejectsBadCutoff(t *testing.T) {
	setEnv(t, "postgres")

	err := run(context.Background(), []string{"complete-bookings", "-before", "2025-13-40"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)
}
