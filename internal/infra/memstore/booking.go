package memstore

import (
	"cmp"
	"context"
	"slices"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/infra"

	"github.com/google/uuid"
)

type bookingRepository struct {
	tx *memTx
}

func (r *bookingRepository) ExistsConflict(_ context.Context, slotID uuid.UUID, date booking.Date, timeSlot booking.TimeSlot) (bool, error) {
	return r.activeHolder(slotID, date, timeSlot, uuid.Nil), nil
}

// activeHolder mirrors the partial unique index on
// (slot_id, booking_date, time_slot) WHERE status = 'booked'.
func (r *bookingRepository) activeHolder(slotID uuid.UUID, date booking.Date, timeSlot booking.TimeSlot, except uuid.UUID) bool {
	for _, rec := range r.tx.st.bookings {
		if rec.ID != except &&
			rec.Status.IsActive() &&
			rec.SlotID == slotID &&
			rec.Date.Equal(date.Time()) &&
			rec.TimeSlot == timeSlot.Value() {
			return true
		}
	}
	return false
}

func (r *bookingRepository) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.checkWritable("create booking"); err != nil {
		return err
	}
	if _, ok := r.tx.st.slots[b.SlotID()]; !ok {
		return infra.WrapRepoErr("booking references unknown slot", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.tx.st.users[b.UserID()]; !ok {
		return infra.WrapRepoErr("booking references unknown user", nil, infra.KindForeignKeyViolated)
	}
	if b.Status().IsActive() && r.activeHolder(b.SlotID(), b.Date(), b.TimeSlot(), b.ID()) {
		return infra.WrapRepoErr("active booking exists for slot, date and time slot", nil, infra.KindConflict)
	}
	r.tx.st.bookings[b.ID()] = toBookingRecord(b)
	return nil
}

func (r *bookingRepository) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	rec, ok := r.tx.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return toBooking(rec), nil
}

// FindByIDForUpdate needs no extra locking: writers already hold the store lock.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *bookingRepository) ListByUser(_ context.Context, userID uuid.UUID, status *booking.Status) ([]*booking.Booking, error) {
	var recs []bookingRecord
	for _, rec := range r.tx.st.bookings {
		if rec.UserID != userID {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b bookingRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID.String(), a.ID.String())
	})

	out := make([]*booking.Booking, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toBooking(rec))
	}
	return out, nil
}

func (r *bookingRepository) BookedSlotIDs(_ context.Context, date booking.Date, timeSlot booking.TimeSlot) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, rec := range r.tx.st.bookings {
		if rec.Status.IsActive() && rec.Date.Equal(date.Time()) && rec.TimeSlot == timeSlot.Value() {
			ids = append(ids, rec.SlotID)
		}
	}
	return ids, nil
}

func (r *bookingRepository) ListBookedBefore(_ context.Context, date booking.Date) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, rec := range r.tx.st.bookings {
		if rec.Status.IsActive() && rec.Date.Before(date.Time()) {
			out = append(out, toBooking(rec))
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		return a.Date().Time().Compare(b.Date().Time())
	})
	return out, nil
}

func (r *bookingRepository) UpdateStatus(_ context.Context, b *booking.Booking, from booking.Status) error {
	if err := r.tx.checkWritable("update booking"); err != nil {
		return err
	}
	rec, ok := r.tx.st.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if rec.Status != from {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	if b.Status().IsActive() && r.activeHolder(rec.SlotID, b.Date(), b.TimeSlot(), rec.ID) {
		return infra.WrapRepoErr("active booking exists for slot, date and time slot", nil, infra.KindConflict)
	}
	rec.Status = b.Status()
	rec.UpdatedAt = b.UpdatedAt()
	r.tx.st.bookings[b.ID()] = rec
	return nil
}

func toBookingRecord(b *booking.Booking) bookingRecord {
	return bookingRecord{
		ID:        b.ID(),
		UserID:    b.UserID(),
		SlotID:    b.SlotID(),
		Date:      b.Date().Time(),
		TimeSlot:  b.TimeSlot().Value(),
		Status:    b.Status(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toBooking(rec bookingRecord) *booking.Booking {
	return booking.Reconstruct(rec.ID, rec.UserID, rec.SlotID, rec.Date, rec.TimeSlot, rec.Status, rec.CreatedAt, rec.UpdatedAt)
}
