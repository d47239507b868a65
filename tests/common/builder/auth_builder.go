//go:build unit || e2e

package builder

import (
	reqdto "parking-reservation/internal/handler/dto/request"
)

type AuthBuilder struct {
	Username string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Username: "alice",
		Password: "password123",
	}
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Username: a.Username,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildCreateUserDTO(role string) reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		Username: a.Username,
		Password: a.Password,
		Role:     role,
	}
}
