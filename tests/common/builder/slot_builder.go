//go:build unit || e2e

package builder

import (
	"time"

	"parking-reservation/internal/domain/slot"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID          uuid.UUID
	Number      string
	ParkingType string
	IsAvailable bool
	CreatedAt   time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ID:          uuid.New(),
		Number:      "P1",
		ParkingType: "regular",
		IsAvailable: true,
		CreatedAt:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(s)
	return s
}

// Build methods
func (s *SlotBuilder) BuildDomain() *slot.Slot {
	return slot.Reconstruct(s.ID, s.Number, slot.Type(s.ParkingType), s.IsAvailable, s.CreatedAt)
}

func (s *SlotBuilder) BuildView() *queries.SlotView {
	return queries.ToSlotView(s.BuildDomain())
}

func (s *SlotBuilder) BuildCreateDTO() reqdto.CreateSlotRequest {
	available := s.IsAvailable
	return reqdto.CreateSlotRequest{
		Number:      s.Number,
		ParkingType: s.ParkingType,
		IsAvailable: &available,
	}
}

// Fluent builder methods
func (s *SlotBuilder) WithNumber(number string) *SlotBuilder {
	s.Number = number
	return s
}

func (s *SlotBuilder) WithType(parkingType string) *SlotBuilder {
	s.ParkingType = parkingType
	return s
}

func (s *SlotBuilder) AsUnavailable() *SlotBuilder {
	s.IsAvailable = false
	return s
}
