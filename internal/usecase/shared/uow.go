package shared

import (
	"context"
	"time"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction. Writes through the
// repositories of a read-only Tx fail.
type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Users() UserRepository
}

type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	FindByNumber(ctx context.Context, number slot.Number) (*slot.Slot, error)
	// List returns every slot in natural number order (P2 before P10).
	List(ctx context.Context) ([]*slot.Slot, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*slot.Slot, error)
	UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

type BookingRepository interface {
	// ExistsConflict reports whether a booked booking holds the same slot,
	// date and time slot label.
	ExistsConflict(ctx context.Context, slotID uuid.UUID, date booking.Date, timeSlot booking.TimeSlot) (bool, error)
	// Create fails with KindConflict when another booked booking holds the
	// same triple, and KindForeignKeyViolated when the slot or user is gone.
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ListByUser returns newest first; a nil status means every status.
	ListByUser(ctx context.Context, userID uuid.UUID, status *booking.Status) ([]*booking.Booking, error)
	BookedSlotIDs(ctx context.Context, date booking.Date, timeSlot booking.TimeSlot) ([]uuid.UUID, error)
	// ListBookedBefore returns booked bookings dated strictly before date.
	ListBookedBefore(ctx context.Context, date booking.Date) ([]*booking.Booking, error)
	// UpdateStatus persists b's status only if the stored status still equals
	// from; otherwise it fails with KindConflict.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username user.Username) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
