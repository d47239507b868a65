package pgstore

import (
	"context"
	"time"

	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var userColumns = []string{"id", "username", "password_hash", "role", "is_active", "last_login", "created_at"}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(
			u.ID(),
			u.Username().Value(),
			u.PasswordHash(),
			u.Role().String(),
			u.IsActive(),
			pgconv.TimePtrToPgtype(u.LastLogin()),
			u.CreatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("username already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username user.Username) (*user.User, error) {
	return r.findOne(ctx, sq.Expr("lower(username) = lower(?)", username.Value()))
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Sqlizer) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := psql.Update("users").
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id           uuid.UUID
		username     string
		passwordHash string
		role         string
		isActive     bool
		lastLogin    pgtype.Timestamptz
		createdAt    time.Time
	)
	if err := row.Scan(&id, &username, &passwordHash, &role, &isActive, &lastLogin, &createdAt); err != nil {
		return nil, err
	}
	return user.Reconstruct(
		id,
		username,
		passwordHash,
		user.Role(role),
		isActive,
		pgconv.TimePtrFromPgtype(lastLogin),
		createdAt.UTC(),
	), nil
}
