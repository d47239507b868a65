package memstore

import (
	"context"
	"strings"
	"time"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/infra"

	"github.com/google/uuid"
)

type userRepository struct {
	tx *memTx
}

func (r *userRepository) Create(_ context.Context, u *user.User) error {
	if err := r.tx.checkWritable("create user"); err != nil {
		return err
	}
	for _, rec := range r.tx.st.users {
		if strings.EqualFold(rec.Username, u.Username().Value()) {
			return infra.WrapRepoErr("username already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.st.users[u.ID()] = userRecord{
		ID:           u.ID(),
		Username:     u.Username().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		LastLogin:    u.LastLogin(),
		CreatedAt:    u.CreatedAt(),
	}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	rec, ok := r.tx.st.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return toUser(rec), nil
}

func (r *userRepository) FindByUsername(_ context.Context, username user.Username) (*user.User, error) {
	for _, rec := range r.tx.st.users {
		if strings.EqualFold(rec.Username, username.Value()) {
			return toUser(rec), nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *userRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.tx.checkWritable("update user"); err != nil {
		return err
	}
	rec, ok := r.tx.st.users[id]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	rec.LastLogin = &at
	r.tx.st.users[id] = rec
	return nil
}

func toUser(rec userRecord) *user.User {
	return user.Reconstruct(rec.ID, rec.Username, rec.PasswordHash, user.Role(rec.Role), rec.IsActive, rec.LastLogin, rec.CreatedAt)
}
