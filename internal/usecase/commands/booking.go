package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"log/slog"

	"parking-reservation/internal/domain/booking"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/pkg/metrics"
	"parking-reservation/internal/usecase/queries"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	// Create admits a booking for the requester. The owner and the initial
	// status are never taken from the request.
	Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	// UpdateStatus applies an owner requested status change. Only
	// booked -> cancelled is accepted.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, req reqdto.UpdateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) (*queries.BookingView, error)
	// CompletePast marks booked bookings dated before the given day as
	// completed and returns how many changed.
	CompletePast(ctx context.Context, before booking.Date) (int, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, m *metrics.Metrics) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		clock:   clk,
		metrics: m,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	date, timeSlot, err := req.ToDomain()
	if err != nil {
		if errs.Is(err, booking.ErrInvalidDate) {
			return nil, errs.Mark(err, errs.ErrInvalidDateFormat)
		}
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	var view *queries.BookingView
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, req.ParkingSlot)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrSlotNotFound)
		}
		if !s.IsAvailable() {
			return errs.ErrSlotUnavailable
		}

		exists, err := tx.Bookings().ExistsConflict(ctx, s.ID(), date, timeSlot)
		if err != nil {
			return shared.MarkStore(err)
		}
		if exists {
			return errs.ErrBookingConflict
		}

		b := booking.NewBooking(userID, s.ID(), date, timeSlot, c.clock.Now())
		if err := tx.Bookings().Create(ctx, b); err != nil {
			switch {
			// Lost the race against a concurrent admission.
			case infra.IsKind(err, infra.KindConflict):
				return errs.Mark(err, errs.ErrBookingConflict)
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return errs.Mark(err, errs.ErrSlotNotFound)
			default:
				return shared.MarkStore(err)
			}
		}

		owner, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrUserNotFound)
		}
		view = queries.ToBookingView(b, s, owner)
		return nil
	})

	c.metrics.Admission(admissionOutcome(err))
	if err != nil {
		return nil, err
	}

	slog.Info("booking created",
		"booking_id", view.ID,
		"slot", view.Slot.Number,
		"date", view.BookingDate,
		"time_slot", view.TimeSlot,
		"user_id", userID)
	return view, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req reqdto.UpdateBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	next, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStatus)
	}
	return c.requestStatus(ctx, bookingID, next, userID)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) (*queries.BookingView, error) {
	return c.requestStatus(ctx, bookingID, booking.StatusCancelled, userID)
}

func (c *bookingCommandsImpl) requestStatus(ctx context.Context, bookingID uuid.UUID, next booking.Status, userID uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrBookingNotFound)
		}

		prev := b.Status()
		if err := b.RequestStatus(userID, next, c.clock.Now()); err != nil {
			if errs.Is(err, booking.ErrNotOwner) {
				return errs.Mark(err, errs.ErrBookingForbidden)
			}
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Bookings().UpdateStatus(ctx, b, prev); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			return shared.MarkNotFound(err, errs.ErrBookingNotFound)
		}

		view, err = queries.LoadBookingView(ctx, tx, b)
		return err
	})

	c.metrics.Cancellation(cancellationOutcome(err))
	if err != nil {
		return nil, err
	}

	slog.Info("booking status changed",
		"booking_id", bookingID,
		"status", view.Status,
		"user_id", userID)
	return view, nil
}

func (c *bookingCommandsImpl) CompletePast(ctx context.Context, before booking.Date) (int, error) {
	var completed int
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		completed = 0
		bookings, err := tx.Bookings().ListBookedBefore(ctx, before)
		if err != nil {
			return shared.MarkStore(err)
		}

		now := c.clock.Now()
		for _, b := range bookings {
			if err := b.Complete(now); err != nil {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			err := tx.Bookings().UpdateStatus(ctx, b, booking.StatusBooked)
			if infra.IsKind(err, infra.KindConflict) {
				// Cancelled since it was listed.
				continue
			}
			if err != nil {
				return shared.MarkStore(err)
			}
			completed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return completed, nil
}

func admissionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errs.Is(err, errs.ErrBookingConflict):
		return metrics.OutcomeConflict
	case errs.Is(err, errs.ErrSlotUnavailable):
		return metrics.OutcomeUnavailable
	case errs.Is(err, errs.ErrSlotNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func cancellationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCancelled
	case errs.Is(err, errs.ErrBookingForbidden):
		return metrics.OutcomeForbidden
	case errs.Is(err, errs.ErrInvalidTransition):
		return metrics.OutcomeRejected
	case errs.Is(err, errs.ErrBookingNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
