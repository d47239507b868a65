//go:build unit || e2e

// Package storetest holds the behaviour every shared.UnitOfWork
// implementation must share, so the in-memory and PostgreSQL stores are
// checked against the same cases.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/domain/user"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	errStop = errors.New("stop")
)

type fixture struct {
	uow   shared.UnitOfWork
	alice *user.User
	bob   *user.User
	p1    *slot.Slot
	p2    *slot.Slot
	date  booking.Date
	ts    booking.TimeSlot
}

// Run executes the contract. newUoW must return an empty store.
func Run(t *testing.T, newUoW func(t *testing.T) shared.UnitOfWork) {
	setup := func(t *testing.T) *fixture {
		t.Helper()
		f := &fixture{uow: newUoW(t)}
		f.alice = newUser(t, "alice")
		f.bob = newUser(t, "bob")
		f.p1 = slot.NewSlot(slot.SeedNumber(1), slot.TypeRegular, now)
		f.p2 = slot.NewSlot(slot.SeedNumber(2), slot.TypePremium, now)

		var err error
		f.date, err = booking.ParseDate("2025-06-01")
		require.NoError(t, err)
		f.ts, err = booking.NewTimeSlot("9:00AM - 11:00AM")
		require.NoError(t, err)

		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			for _, u := range []*user.User{f.alice, f.bob} {
				if err := tx.Users().Create(ctx, u); err != nil {
					return err
				}
			}
			for _, s := range []*slot.Slot{f.p1, f.p2} {
				if err := tx.Slots().Create(ctx, s); err != nil {
					return err
				}
			}
			return nil
		})
		return f
	}

	t.Run("users", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()

		err := f.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			upper, err := user.NewUsername("ALICE")
			require.NoError(t, err)
			got, err := tx.Users().FindByUsername(ctx, upper)
			require.NoError(t, err)
			assert.Equal(t, f.alice.ID(), got.ID())
			assert.Equal(t, "alice", got.Username().Value())

			_, err = tx.Users().FindByID(ctx, uuid.New())
			assert.True(t, infra.IsKind(err, infra.KindNotFound))
			return nil
		})
		require.NoError(t, err)

		err = f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Users().Create(ctx, newUser(t, "Alice"))
		})
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)

		loginAt := now.Add(time.Hour)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Users().UpdateLastLogin(ctx, f.alice.ID(), loginAt)
		})
		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Users().FindByID(ctx, f.alice.ID())
			require.NoError(t, err)
			require.NotNil(t, got.LastLogin())
			assert.True(t, got.LastLogin().Equal(loginAt))
			return nil
		})
	})

	t.Run("slots", func(t *testing.T) {
		f := setup(t)
		p10 := slot.NewSlot(slot.SeedNumber(10), slot.TypeElectric, now)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().Create(ctx, p10)
		})

		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().Create(ctx, slot.NewSlot(slot.SeedNumber(1), slot.TypeDisabled, now))
		})
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)

		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().UpdateAvailability(ctx, f.p2.ID(), false)
		})
		err = f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Slots().UpdateAvailability(ctx, uuid.New(), false)
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)

		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			all, err := tx.Slots().List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"P1", "P2", "P10"}, numbers(all))
			assert.False(t, all[1].IsAvailable())
			assert.Equal(t, slot.TypeElectric, all[2].Type())

			some, err := tx.Slots().FindByIDs(ctx, []uuid.UUID{p10.ID(), f.p1.ID(), uuid.New()})
			require.NoError(t, err)
			assert.Equal(t, []string{"P1", "P10"}, numbers(some))

			byNumber, err := tx.Slots().FindByNumber(ctx, slot.SeedNumber(10))
			require.NoError(t, err)
			assert.Equal(t, p10.ID(), byNumber.ID())
			return nil
		})
	})

	t.Run("slot order ignores collation and byte length", func(t *testing.T) {
		f := setup(t)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			for _, raw := range []string{"B10", "Ü1", "p1"} {
				number, err := slot.NewNumber(raw)
				require.NoError(t, err)
				if err := tx.Slots().Create(ctx, slot.NewSlot(number, slot.TypeRegular, now)); err != nil {
					return err
				}
			}
			return nil
		})

		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			all, err := tx.Slots().List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"P1", "P2", "p1", "Ü1", "B10"}, numbers(all))
			return nil
		})
	})

	t.Run("one active booking per slot, date and time slot", func(t *testing.T) {
		f := setup(t)
		first := booking.NewBooking(f.alice.ID(), f.p1.ID(), f.date, f.ts, now)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Create(ctx, first)
		})

		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			exists, err := tx.Bookings().ExistsConflict(ctx, f.p1.ID(), f.date, f.ts)
			require.NoError(t, err)
			assert.True(t, exists)
			return tx.Bookings().Create(ctx, booking.NewBooking(f.bob.ID(), f.p1.ID(), f.date, f.ts, now))
		})
		assert.True(t, infra.IsKind(err, infra.KindConflict), "got %v", err)

		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			ids, err := tx.Bookings().BookedSlotIDs(ctx, f.date, f.ts)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{f.p1.ID()}, ids)
			return nil
		})

		// cancelling frees the triple
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, first.ID())
			if err != nil {
				return err
			}
			if err := b.RequestStatus(f.alice.ID(), booking.StatusCancelled, now.Add(time.Minute)); err != nil {
				return err
			}
			return tx.Bookings().UpdateStatus(ctx, b, booking.StatusBooked)
		})
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			exists, err := tx.Bookings().ExistsConflict(ctx, f.p1.ID(), f.date, f.ts)
			require.NoError(t, err)
			assert.False(t, exists)
			return tx.Bookings().Create(ctx, booking.NewBooking(f.bob.ID(), f.p1.ID(), f.date, f.ts, now))
		})
	})

	t.Run("status updates are compare-and-set", func(t *testing.T) {
		f := setup(t)
		b := booking.NewBooking(f.alice.ID(), f.p1.ID(), f.date, f.ts, now)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Create(ctx, b)
		})

		require.NoError(t, b.Complete(now.Add(time.Hour)))
		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().UpdateStatus(ctx, b, booking.StatusCancelled)
		})
		assert.True(t, infra.IsKind(err, infra.KindConflict), "got %v", err)

		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().UpdateStatus(ctx, b, booking.StatusBooked)
		})
		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Bookings().FindByID(ctx, b.ID())
			require.NoError(t, err)
			assert.Equal(t, booking.StatusCompleted, got.Status())
			assert.True(t, got.UpdatedAt().Equal(now.Add(time.Hour)))
			assert.True(t, f.date.Equal(got.Date()))
			assert.Equal(t, f.ts, got.TimeSlot())
			return nil
		})
	})

	t.Run("listing", func(t *testing.T) {
		f := setup(t)
		earlier, err := booking.ParseDate("2025-05-20")
		require.NoError(t, err)

		older := booking.NewBooking(f.alice.ID(), f.p1.ID(), earlier, f.ts, now)
		newer := booking.NewBooking(f.alice.ID(), f.p2.ID(), f.date, f.ts, now.Add(time.Minute))
		other := booking.NewBooking(f.bob.ID(), f.p1.ID(), f.date, f.ts, now)
		write(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			for _, b := range []*booking.Booking{older, newer, other} {
				if err := tx.Bookings().Create(ctx, b); err != nil {
					return err
				}
			}
			return nil
		})

		read(t, f.uow, func(ctx context.Context, tx shared.Tx) error {
			mine, err := tx.Bookings().ListByUser(ctx, f.alice.ID(), nil)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{newer.ID(), older.ID()}, ids(mine))

			booked := booking.StatusBooked
			filtered, err := tx.Bookings().ListByUser(ctx, f.bob.ID(), &booked)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{other.ID()}, ids(filtered))

			cancelled := booking.StatusCancelled
			none, err := tx.Bookings().ListByUser(ctx, f.bob.ID(), &cancelled)
			require.NoError(t, err)
			assert.Empty(t, none)

			past, err := tx.Bookings().ListBookedBefore(ctx, f.date)
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{older.ID()}, ids(past))
			return nil
		})
	})

	t.Run("bookings must reference existing rows", func(t *testing.T) {
		f := setup(t)
		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Bookings().Create(ctx, booking.NewBooking(f.alice.ID(), uuid.New(), f.date, f.ts, now))
		})
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated), "got %v", err)

		_, err = findBooking(f.uow, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("failed transactions leave no trace", func(t *testing.T) {
		f := setup(t)
		b := booking.NewBooking(f.alice.ID(), f.p1.ID(), f.date, f.ts, now)
		err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Bookings().Create(ctx, b); err != nil {
				return err
			}
			return errStop
		})
		require.ErrorIs(t, err, errStop)

		_, err = findBooking(f.uow, b.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})
}

func newUser(t *testing.T, name string) *user.User {
	t.Helper()
	username, err := user.NewUsername(name)
	require.NoError(t, err)
	return user.NewUser(username, "hash", user.RoleMember, now)
}

func write(t *testing.T, uow shared.UnitOfWork, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, uow.Within(context.Background(), fn))
}

func read(t *testing.T, uow shared.UnitOfWork, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, uow.WithinReadOnly(context.Background(), fn))
}

func findBooking(uow shared.UnitOfWork, id uuid.UUID) (*booking.Booking, error) {
	var found *booking.Booking
	err := uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		found = b
		return err
	})
	return found, err
}

func numbers(slots []*slot.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Number().Value())
	}
	return out
}

func ids(bookings []*booking.Booking) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID())
	}
	return out
}
