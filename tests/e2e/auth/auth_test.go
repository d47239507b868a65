//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/handler/dto/response"
	"parking-reservation/tests/common/authtest"
	"parking-reservation/tests/common/dbtest"
	"parking-reservation/tests/common/httptest"
	"parking-reservation/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/login/"
	meURL    = "/api/me/"
	usersURL = "/api/users/"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	dbtest.CreateTestUser(s.T(), s.DB, "alice", string(user.RoleMember))
	dbtest.CreateTestUser(s.T(), s.DB, "admin", string(user.RoleAdmin))
	inactive := dbtest.CreateTestUser(s.T(), s.DB, "inactive", string(user.RoleMember))

	// 非アクティブユーザーを作成
	dbtest.DeactivateUser(s.T(), s.DB, inactive)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		username       string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			username:       "alice",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "大文字小文字を区別しないユーザー名",
			username:       "ALICE",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
			description:    "ユーザー名の大文字小文字は区別されないこと",
		},
		{
			name:           "存在しないユーザー",
			username:       "nobody",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			username:       "alice",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブユーザー",
			username:       "inactive",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブユーザーはログインできないこと",
		},
		{
			name:           "空のユーザー名",
			username:       "",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusBadRequest,
			description:    "空のユーザー名は拒否されること",
		},
		{
			name:           "空のパスワード",
			username:       "alice",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "空のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Username: tt.username,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				// 成功時のレスポンス形式チェック
				var loginRes response.LoginResponse
				err := httptest.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.Token, "トークンが空")
				require.Equal(t, "alice", loginRes.User.Username)

				// last_loginが更新されることを確認
				var lastLogin any
				err = s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE username = 'alice'").Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_loginが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedStatus int
		expectedName   string
		description    string
	}{
		{
			name: "メンバーの情報取得",
			setupToken: func() string {
				return authtest.LoginUser(s.T(), s.Router, "alice", dbtest.DefaultPassword)
			},
			expectedStatus: http.StatusOK,
			expectedName:   "alice",
			description:    "メンバーの情報が取得できること",
		},
		{
			name: "無効なトークン",
			setupToken: func() string {
				return "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "無効なトークンでは情報取得できないこと",
		},
		{
			name: "トークンなし",
			setupToken: func() string {
				return ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "トークンなしでは情報取得できないこと",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, tt.setupToken())
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				responseBody := w.Body.String()
				require.Contains(t, responseBody, tt.expectedName, "レスポンスにユーザー名が含まれていない")
				require.NotContains(t, responseBody, "password", "レスポンスにパスワード情報が含まれている")
			}
		})
	}
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("期限切れトークンの拒否", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry", string(user.RoleMember))
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "期限切れトークンは拒否されるべき")
	})

	s.Run("Token スキームも受け付ける", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "scheme", string(user.RoleMember))
		token := s.jwtHelper.GenerateToken(t, userID, user.RoleMember)

		w := httptest.PerformRequestWithAuthHeader(t, s.Router, http.MethodGet, meURL, nil, "Token "+token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("削除済みユーザーのトークン", func() {
		t := s.T()

		token := s.jwtHelper.GenerateToken(t, uuid.New(), user.RoleMember)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestCreateUser() {
	s.Run("管理者はユーザーを作成できる", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "admin", dbtest.DefaultPassword)
		body := request.CreateUserRequest{Username: "bob", Password: "s3cret-pass"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, body, token)
		var created response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "bob", created.Username)
		require.Equal(t, "member", created.Role)

		// 作成したユーザーでログインできること
		authtest.LoginUser(t, s.Router, "bob", "s3cret-pass")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, request.CreateUserRequest{Username: "BOB", Password: "s3cret-pass"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already exists")
	})

	s.Run("メンバーはユーザーを作成できない", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "alice", dbtest.DefaultPassword)
		body := request.CreateUserRequest{Username: "carol", Password: "s3cret-pass"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, body, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
