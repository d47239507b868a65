package slot

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a physical parking space. Number and type never change after
// creation; only the availability flag does.
type Slot struct {
	id          uuid.UUID
	number      Number
	slotType    Type
	isAvailable bool
	createdAt   time.Time
}

func NewSlot(number Number, slotType Type, now time.Time) *Slot {
	return &Slot{
		id:          uuid.New(),
		number:      number,
		slotType:    slotType,
		isAvailable: true,
		createdAt:   now,
	}
}

func Reconstruct(id uuid.UUID, number string, slotType Type, isAvailable bool, createdAt time.Time) *Slot {
	return &Slot{
		id:          id,
		number:      Number{value: number},
		slotType:    slotType,
		isAvailable: isAvailable,
		createdAt:   createdAt,
	}
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) Number() Number       { return s.number }
func (s *Slot) Type() Type           { return s.slotType }
func (s *Slot) IsAvailable() bool    { return s.isAvailable }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }

func (s *Slot) String() string {
	return s.number.Value() + " (" + s.slotType.DisplayName() + ")"
}

func (s *Slot) SetAvailability(available bool) {
	s.isAvailable = available
}
