package commands

//go:generate mockgen -source=slot.go -destination=../../../tests/mock/commands/slot.go -package=commandsmock

import (
	"context"
	"log/slog"

	"parking-reservation/internal/domain/slot"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/clock"
	"parking-reservation/internal/pkg/errs"
	"parking-reservation/internal/usecase/queries"
	"parking-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const DefaultSeedCount = 10

// SeedReport lists slot numbers in the order they were processed.
type SeedReport struct {
	Created []string
	Skipped []string
}

type SlotCommands interface {
	Create(ctx context.Context, req reqdto.CreateSlotRequest) (*queries.SlotView, error)
	SetAvailability(ctx context.Context, id uuid.UUID, req reqdto.UpdateSlotRequest) (*queries.SlotView, error)
	// Seed makes sure slots P1..Pcount exist. Existing numbers are skipped,
	// so running it twice is harmless.
	Seed(ctx context.Context, count int) (*SeedReport, error)
}

type slotCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSlotCommands(uow shared.UnitOfWork, clk clock.Clock) SlotCommands {
	return &slotCommandsImpl{uow: uow, clock: clk}
}

func (c *slotCommandsImpl) Create(ctx context.Context, req reqdto.CreateSlotRequest) (*queries.SlotView, error) {
	number, slotType, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlotInput)
	}

	s := slot.NewSlot(number, slotType, c.clock.Now())
	s.SetAvailability(req.Available())

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return c.insert(ctx, tx, s)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("parking slot created", "slot_id", s.ID(), "number", number.Value(), "type", slotType)
	return queries.ToSlotView(s), nil
}

func (c *slotCommandsImpl) SetAvailability(ctx context.Context, id uuid.UUID, req reqdto.UpdateSlotRequest) (*queries.SlotView, error) {
	if req.IsAvailable == nil {
		return nil, errs.ErrMissingParameter
	}

	var view *queries.SlotView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, id)
		if err != nil {
			return shared.MarkNotFound(err, errs.ErrSlotNotFound)
		}
		s.SetAvailability(*req.IsAvailable)
		if err := tx.Slots().UpdateAvailability(ctx, id, s.IsAvailable()); err != nil {
			return shared.MarkNotFound(err, errs.ErrSlotNotFound)
		}
		view = queries.ToSlotView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (c *slotCommandsImpl) Seed(ctx context.Context, count int) (*SeedReport, error) {
	if count < 1 {
		return nil, errs.ErrInvalidSeedCount
	}

	report := &SeedReport{}
	for i := 1; i <= count; i++ {
		s := slot.NewSlot(slot.SeedNumber(i), slot.SeedType(i), c.clock.Now())

		// One transaction per slot: a number inserted concurrently only
		// skips that slot.
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return c.insert(ctx, tx, s)
		})
		switch {
		case err == nil:
			report.Created = append(report.Created, s.Number().Value())
		case errs.Is(err, errs.ErrDuplicateSlotNumber):
			report.Skipped = append(report.Skipped, s.Number().Value())
		default:
			return report, err
		}
	}

	slog.Info("parking slots seeded", "created", len(report.Created), "skipped", len(report.Skipped))
	return report, nil
}

func (c *slotCommandsImpl) insert(ctx context.Context, tx shared.Tx, s *slot.Slot) error {
	_, err := tx.Slots().FindByNumber(ctx, s.Number())
	switch {
	case err == nil:
		return errs.ErrDuplicateSlotNumber
	case !infra.IsKind(err, infra.KindNotFound):
		return shared.MarkStore(err)
	}

	if err := tx.Slots().Create(ctx, s); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, errs.ErrDuplicateSlotNumber)
		}
		return shared.MarkStore(err)
	}
	return nil
}
