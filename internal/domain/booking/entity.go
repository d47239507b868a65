package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("booking is owned by another user")

// Booking reserves one slot for one (date, time slot) pair. Only booked
// bookings occupy the slot.
type Booking struct {
	id        uuid.UUID
	userID    uuid.UUID
	slotID    uuid.UUID
	date      Date
	timeSlot  TimeSlot
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking always starts in StatusBooked and is owned by the requester.
func NewBooking(requester, slotID uuid.UUID, date Date, timeSlot TimeSlot, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		userID:    requester,
		slotID:    slotID,
		date:      date,
		timeSlot:  timeSlot,
		status:    StatusBooked,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(
	id, userID, slotID uuid.UUID,
	date time.Time,
	timeSlot string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		userID:    userID,
		slotID:    slotID,
		date:      DateOf(date),
		timeSlot:  TimeSlot{value: timeSlot},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) SlotID() uuid.UUID    { return b.slotID }
func (b *Booking) Date() Date           { return b.date }
func (b *Booking) TimeSlot() TimeSlot   { return b.timeSlot }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// RequestStatus applies an owner initiated change. Ownership is checked
// before the transition table.
func (b *Booking) RequestStatus(requester uuid.UUID, next Status, now time.Time) error {
	if !b.IsOwnedBy(requester) {
		return ErrNotOwner
	}
	if !next.CanBeRequested() {
		return ErrInvalidTransition
	}
	return b.transition(next, now)
}

func (b *Booking) Cancel(requester uuid.UUID, now time.Time) error {
	return b.RequestStatus(requester, StatusCancelled, now)
}

// Complete is reserved for system use; owners cannot request it.
func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}
