package commands

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth.go -package=commandsmock

import (
	"context"
	"log/slog"

	"parking-reservation/internal/domain/user"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/pkg/jwt"
	"parking-reservation/internal/pkg/password"
	"parking-reservation/internal/usecase/queries"
	"parking-reservation/internal/usecase/shared"
)

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	CreateUser(ctx context.Context, req reqdto.CreateUserRequest) (*queries.AuthorizedUserView, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	username, err := req.ToDomain()
	if err != nil {
		// Same answer as a wrong password to prevent user enumeration
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	var authenticated *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrInvalidCredentials)
			}
			return shared.MarkStore(err)
		}

		if err := password.ComparePassword(u.PasswordHash(), req.Password); err != nil {
			return errs.Mark(err, errs.ErrInvalidCredentials)
		}
		if !u.IsActive() {
			return errs.ErrUserInactive
		}
		authenticated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	authenticated.RecordLogin(a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, authenticated.ID(), *authenticated.LastLogin())
	})
	if err != nil {
		// last_login is informational; keep the login
		slog.Warn("failed to update last login", "user_id", authenticated.ID(), "error", err.Error())
	}

	token, err := a.jwtService.GenerateToken(authenticated)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTokenGeneration)
	}

	return &LoginResult{
		Token: token,
		User:  queries.ToAuthorizedUserView(authenticated),
	}, nil
}

func (a *authCommandsImpl) CreateUser(ctx context.Context, req reqdto.CreateUserRequest) (*queries.AuthorizedUserView, error) {
	username, role, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidUserInput)
	}
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		if errs.Is(err, password.ErrInvalidPassword) {
			return nil, errs.Mark(err, errs.ErrInvalidUserInput)
		}
		return nil, err
	}

	u := user.NewUser(username, hash, role, a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateUsername)
			}
			return shared.MarkStore(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", u.ID(), "username", username.Value(), "role", role)
	return queries.ToAuthorizedUserView(u), nil
}
