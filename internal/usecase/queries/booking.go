package queries

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

import (
	"context"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// ListOwn never returns another user's bookings.
	ListOwn(ctx context.Context, userID uuid.UUID, q reqdto.ListBookingsQuery) ([]*BookingView, error)
	GetOwn(ctx context.Context, userID, bookingID uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) ListOwn(ctx context.Context, userID uuid.UUID, query reqdto.ListBookingsQuery) ([]*BookingView, error) {
	status, err := query.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStatus)
	}

	var views []*BookingView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		owner, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrUserNotFound)
		}
		bookings, err := tx.Bookings().ListByUser(ctx, userID, status)
		if err != nil {
			return shared.MarkStore(err)
		}
		slots, err := LoadSlots(ctx, tx, bookings)
		if err != nil {
			return err
		}

		views = make([]*BookingView, 0, len(bookings))
		for _, b := range bookings {
			s, ok := slots[b.SlotID()]
			if !ok {
				return errs.Mark(errs.New("booking references a missing slot"), errs.ErrDatabaseOperationFailed)
			}
			views = append(views, ToBookingView(b, s, owner))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *bookingQueriesImpl) GetOwn(ctx context.Context, userID, bookingID uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrBookingNotFound)
		}
		if !b.IsOwnedBy(userID) {
			return errs.ErrBookingForbidden
		}
		view, err = LoadBookingView(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// LoadBookingView resolves the slot and owner of b inside tx.
func LoadBookingView(ctx context.Context, tx shared.Tx, b *booking.Booking) (*BookingView, error) {
	s, err := tx.Slots().FindByID(ctx, b.SlotID())
	if err != nil {
		return nil, shared.MarkNotFound(err, errs.ErrSlotNotFound)
	}
	owner, err := tx.Users().FindByID(ctx, b.UserID())
	if err != nil {
		return nil, shared.MarkNotFound(err, errs.ErrUserNotFound)
	}
	return ToBookingView(b, s, owner), nil
}

// LoadSlots fetches the distinct slots referenced by bookings in one call.
func LoadSlots(ctx context.Context, tx shared.Tx, bookings []*booking.Booking) (map[uuid.UUID]*slot.Slot, error) {
	out := make(map[uuid.UUID]*slot.Slot)
	if len(bookings) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		if _, seen := out[b.SlotID()]; !seen {
			out[b.SlotID()] = nil
			ids = append(ids, b.SlotID())
		}
	}
	slots, err := tx.Slots().FindByIDs(ctx, ids)
	if err != nil {
		return nil, shared.MarkStore(err)
	}
	for _, s := range slots {
		out[s.ID()] = s
	}
	for id, s := range out {
		if s == nil {
			delete(out, id)
		}
	}
	return out, nil
}
