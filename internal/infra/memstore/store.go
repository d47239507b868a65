// Package memstore keeps slots, bookings and users in process memory. It
// serves STORE_DRIVER=memory and the unit tests; nothing survives a restart.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotRecord struct {
	ID          uuid.UUID
	Number      string
	Type        string
	IsAvailable bool
	CreatedAt   time.Time
}

type bookingRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SlotID    uuid.UUID
	Date      time.Time
	TimeSlot  string
	Status    booking.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type userRecord struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

type state struct {
	slots    map[uuid.UUID]slotRecord
	bookings map[uuid.UUID]bookingRecord
	users    map[uuid.UUID]userRecord
}

func (s *state) clone() *state {
	return &state{
		slots:    maps.Clone(s.slots),
		bookings: maps.Clone(s.bookings),
		users:    maps.Clone(s.users),
	}
}

// Store serializes writers behind one lock. A write transaction works on a
// copy of the maps that replaces the live ones only when fn succeeds.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{
		state: &state{
			slots:    make(map[uuid.UUID]slotRecord),
			bookings: make(map[uuid.UUID]bookingRecord),
			users:    make(map[uuid.UUID]userRecord),
		},
	}
}

func NewUoW(store *Store) shared.UnitOfWork {
	return store
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &memTx{st: s.state, readOnly: true})
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) Slots() shared.SlotRepository       { return &slotRepository{tx: t} }
func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepository{tx: t} }
func (t *memTx) Users() shared.UserRepository       { return &userRepository{tx: t} }

func (t *memTx) checkWritable(op string) error {
	if t.readOnly {
		return infra.WrapRepoErr(op+" in read-only transaction", nil)
	}
	return nil
}
