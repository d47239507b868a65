// Package pgstore persists slots, bookings and users in PostgreSQL through
// pgx, with statements built by squirrel.
package pgstore

import (
	"context"
	"log/slog"

	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/pkg/metrics"
	"parking-reservation/internal/pkg/pgconv"
	"parking-reservation/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUoW struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

func NewPostgresUoW(pool *pgxpool.Pool, m *metrics.Metrics) shared.UnitOfWork {
	return &PostgresUoW{
		pool:    pool,
		metrics: m,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes. The
// partial unique index on bookings, not the isolation level, keeps two
// active bookings off the same slot.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	policy := shared.DefaultRetryPolicy(pgconv.IsRetryable)
	policy.OnRetry = func(int, error) { u.metrics.TxRetry() }

	return shared.RunWithRetry(ctx, policy, func(ctx context.Context) error {
		return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	})
}

// Read-only snapshot so that multi-table reads see one point in time
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, fn)
}

// Rolls back explicitly instead of deferring so retries do not pile up defers
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{db: pgxTx})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errs.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

type pgTx struct {
	db DBTX

	// Lazy-initialized repositories
	slotRepo    *SlotRepository
	bookingRepo *BookingRepository
	userRepo    *UserRepository
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = NewSlotRepository(t.db)
	}
	return t.slotRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = NewBookingRepository(t.db)
	}
	return t.bookingRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = NewUserRepository(t.db)
	}
	return t.userRepo
}
