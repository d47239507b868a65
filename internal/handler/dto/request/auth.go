package request

import (
	"parking-reservation/internal/domain/user"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToDomain() (user.Username, error) {
	return user.NewUsername(r.Username)
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=member admin"`
}

func (r *CreateUserRequest) ToDomain() (user.Username, user.Role, error) {
	username, err := user.NewUsername(r.Username)
	if err != nil {
		return user.Username{}, "", err
	}
	if r.Role == "" {
		return username, user.RoleMember, nil
	}
	role, err := user.NewRole(r.Role)
	if err != nil {
		return user.Username{}, "", err
	}
	return username, role, nil
}
