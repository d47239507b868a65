//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"testing"

	"parking-reservation/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestRepositoryError(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("default kind is DB failure", func(t *testing.T) {
		err := infra.WrapRepoErr("failed to list slots", cause)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "DB_FAILURE: failed to list slots")
	})

	t.Run("explicit kind survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("create booking: %w", infra.WrapRepoErr("active booking exists", nil, infra.KindConflict))
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.False(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.False(t, infra.IsKind(cause, infra.KindNotFound))
	})
}
