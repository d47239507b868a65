//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/config"
	"parking-reservation/internal/pkg/jwt"
	"parking-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return h.sign(t, userID, role, duration, clock.NewRealClock())
}

// CreateExpiredToken signs a token whose lifetime ended an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * time.Hour))
	return h.sign(t, userID, role, time.Hour, past)
}

func (h *JWTHelper) sign(t *testing.T, userID uuid.UUID, role user.Role, duration time.Duration, clk clock.Clock) string {
	t.Helper()
	b := builder.NewUserBuilder().WithRole(role.String())
	b.ID = userID
	u, err := b.BuildDomain()
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration, clk).GenerateToken(u)
	require.NoError(t, err)
	return token
}
