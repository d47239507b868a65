//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/handler/dto/response"
	"parking-reservation/tests/common/dbtest"
	"parking-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/login/",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res response.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	require.NotEmpty(t, res.Token, "token missing from login response")

	return res.Token
}

// CreateAndLogin inserts a user with the default password and returns its id
// and a fresh token.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username, role string) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, username, role)
	return id, LoginUser(t, router, username, dbtest.DefaultPassword)
}
