//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-reservation/internal/domain/user"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/pkg/password"
	"parking-reservation/internal/usecase/shared"

	"github.com/stretchr/testify/suite"
)

type AuthCommandsTestSuite struct {
	harness
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) TestLogin() {
	id := s.createUser("alice", user.RoleAdmin)
	s.clock.Advance(time.Hour)

	res, err := s.auth.Login(s.ctx, reqdto.LoginRequest{Username: "alice", Password: testPassword})
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Equal(id, res.User.ID)
	s.Equal("admin", res.User.Role)
	s.Require().NotNil(res.User.LastLogin)
	s.True(res.User.LastLogin.Equal(s.clock.Now()))

	claims, err := s.jwt.ValidateToken(res.Token)
	s.Require().NoError(err)
	s.Equal(id, claims.UserID)
	s.Equal(user.RoleAdmin, claims.Role)

	me, err := s.userQ.GetCurrentUser(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(me.LastLogin, "last login is persisted")
}

func (s *AuthCommandsTestSuite) TestLoginRejectsBadCredentials() {
	s.createUser("alice", user.RoleMember)

	cases := []struct {
		name string
		req  reqdto.LoginRequest
	}{
		{name: "wrong password", req: reqdto.LoginRequest{Username: "alice", Password: "wrong-password"}},
		{name: "unknown user", req: reqdto.LoginRequest{Username: "mallory", Password: testPassword}},
		{name: "malformed username", req: reqdto.LoginRequest{Username: "a l i c e", Password: testPassword}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.auth.Login(s.ctx, tc.req)
			s.True(errs.Is(err, errs.ErrInvalidCredentials), "got %v", err)
		})
	}
}

func (s *AuthCommandsTestSuite) TestLoginRejectsInactiveUser() {
	hash, err := password.HashPassword(testPassword)
	s.Require().NoError(err)
	name, err := user.NewUsername("dormant")
	s.Require().NoError(err)

	u := user.NewUser(name, hash, user.RoleMember, s.clock.Now())
	u.Deactivate()
	err = s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, reqdto.LoginRequest{Username: "dormant", Password: testPassword})
	s.True(errs.Is(err, errs.ErrUserInactive))

	_, err = s.userQ.GetCurrentUser(s.ctx, u.ID())
	s.True(errs.Is(err, errs.ErrUserInactive))
}

func (s *AuthCommandsTestSuite) TestCreateUser() {
	s.Run("role defaults to member", func() {
		view, err := s.auth.CreateUser(s.ctx, reqdto.CreateUserRequest{Username: "carol", Password: testPassword})
		s.Require().NoError(err)
		s.Equal("member", view.Role)
		s.True(view.IsActive)
		s.Nil(view.LastLogin)
	})

	s.Run("usernames are unique regardless of case", func() {
		_, err := s.auth.CreateUser(s.ctx, reqdto.CreateUserRequest{Username: "CAROL", Password: testPassword})
		s.True(errs.Is(err, errs.ErrDuplicateUsername))
	})

	s.Run("invalid username", func() {
		_, err := s.auth.CreateUser(s.ctx, reqdto.CreateUserRequest{Username: "no spaces", Password: testPassword})
		s.True(errs.Is(err, errs.ErrInvalidUserInput))
	})
}
