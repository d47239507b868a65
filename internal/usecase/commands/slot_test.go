//go:build unit

package commands_test

import (
	"testing"

	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SlotCommandsTestSuite struct {
	harness
}

func TestSlotCommandsSuite(t *testing.T) {
	suite.Run(t, new(SlotCommandsTestSuite))
}

func (s *SlotCommandsTestSuite) TestSeedIsIdempotent() {
	report, err := s.slots.Seed(s.ctx, 4)
	s.Require().NoError(err)
	s.Equal([]string{"P1", "P2", "P3", "P4"}, report.Created)
	s.Empty(report.Skipped)

	report, err = s.slots.Seed(s.ctx, 6)
	s.Require().NoError(err)
	s.Equal([]string{"P5", "P6"}, report.Created)
	s.Equal([]string{"P1", "P2", "P3", "P4"}, report.Skipped)

	views, err := s.slotQ.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 6)

	types := make([]string, 0, len(views))
	for _, v := range views {
		types = append(types, v.ParkingType)
	}
	s.Equal([]string{"regular", "premium", "disabled", "electric", "regular", "premium"}, types)
	s.Equal("P4 (Electric Charging)", views[3].DisplayName)
}

func (s *SlotCommandsTestSuite) TestSeedRejectsNonPositiveCount() {
	_, err := s.slots.Seed(s.ctx, 0)
	s.True(errs.Is(err, errs.ErrInvalidSeedCount))
}

func (s *SlotCommandsTestSuite) TestListOrdersNumbersNaturally() {
	_, err := s.slots.Seed(s.ctx, 11)
	s.Require().NoError(err)

	views, err := s.slotQ.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("P2", views[1].Number)
	s.Equal("P10", views[9].Number)
	s.Equal("P11", views[10].Number)
}

func (s *SlotCommandsTestSuite) TestCreate() {
	view, err := s.slots.Create(s.ctx, reqdto.CreateSlotRequest{Number: "A1", ParkingType: "premium"})
	s.Require().NoError(err)
	s.Equal("A1", view.Number)
	s.True(view.IsAvailable)

	got, err := s.slotQ.Get(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Equal(view.ID, got.ID)

	_, err = s.slots.Create(s.ctx, reqdto.CreateSlotRequest{Number: "A1", ParkingType: "regular"})
	s.True(errs.Is(err, errs.ErrDuplicateSlotNumber))

	_, err = s.slots.Create(s.ctx, reqdto.CreateSlotRequest{Number: "A2", ParkingType: "compact"})
	s.True(errs.Is(err, errs.ErrInvalidSlotInput))
}

func (s *SlotCommandsTestSuite) TestSetAvailability() {
	view, err := s.slots.Create(s.ctx, reqdto.CreateSlotRequest{Number: "B1", ParkingType: "regular"})
	s.Require().NoError(err)

	closed := false
	updated, err := s.slots.SetAvailability(s.ctx, view.ID, reqdto.UpdateSlotRequest{IsAvailable: &closed})
	s.Require().NoError(err)
	s.False(updated.IsAvailable)

	_, err = s.slots.SetAvailability(s.ctx, uuid.New(), reqdto.UpdateSlotRequest{IsAvailable: &closed})
	s.True(errs.Is(err, errs.ErrSlotNotFound))

	_, err = s.slots.SetAvailability(s.ctx, view.ID, reqdto.UpdateSlotRequest{})
	s.True(errs.Is(err, errs.ErrMissingParameter))

	_, err = s.slotQ.Get(s.ctx, uuid.New())
	s.True(errs.Is(err, errs.ErrSlotNotFound))
}
