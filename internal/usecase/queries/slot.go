package queries

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/queries/slot.go -package=queriesmock

import (
	"context"
	"slices"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotQueries interface {
	List(ctx context.Context) ([]*SlotView, error)
	Get(ctx context.Context, id uuid.UUID) (*SlotView, error)
	// Available lists the slots with no booked booking for the requested
	// date and time slot label.
	Available(ctx context.Context, q reqdto.AvailableSlotsQuery) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSlotQueries(uow shared.UnitOfWork) SlotQueries {
	return &slotQueriesImpl{uow: uow}
}

func (q *slotQueriesImpl) List(ctx context.Context) ([]*SlotView, error) {
	var views []*SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		slots, err := tx.Slots().List(ctx)
		if err != nil {
			return shared.MarkStore(err)
		}
		views = ToSlotViews(slots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *slotQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*SlotView, error) {
	var view *SlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, id)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrSlotNotFound)
		}
		view = ToSlotView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *slotQueriesImpl) Available(ctx context.Context, query reqdto.AvailableSlotsQuery) ([]*SlotView, error) {
	if !query.HasAll() {
		return nil, errs.ErrMissingParameter
	}
	date, timeSlot, err := query.ToDomain()
	if err != nil {
		if errs.Is(err, booking.ErrInvalidDate) {
			return nil, errs.Mark(err, errs.ErrInvalidDateFormat)
		}
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	var views []*SlotView
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		booked, err := tx.Bookings().BookedSlotIDs(ctx, date, timeSlot)
		if err != nil {
			return shared.MarkStore(err)
		}
		slots, err := tx.Slots().List(ctx)
		if err != nil {
			return shared.MarkStore(err)
		}

		taken := make(map[uuid.UUID]struct{}, len(booked))
		for _, id := range booked {
			taken[id] = struct{}{}
		}
		free := slices.DeleteFunc(slots, func(s *slot.Slot) bool {
			_, isTaken := taken[s.ID()]
			return isTaken || !s.IsAvailable()
		})
		views = ToSlotViews(free)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
