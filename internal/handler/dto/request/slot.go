package request

import (
	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
)

type CreateSlotRequest struct {
	Number      string `json:"number" binding:"required,max=10"`
	ParkingType string `json:"parking_type" binding:"required,oneof=regular premium disabled electric"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

func (r CreateSlotRequest) ToDomain() (slot.Number, slot.Type, error) {
	number, err := slot.NewNumber(r.Number)
	if err != nil {
		return slot.Number{}, "", err
	}
	slotType, err := slot.NewType(r.ParkingType)
	if err != nil {
		return slot.Number{}, "", err
	}
	return number, slotType, nil
}

// Available reports the requested flag, true when omitted.
func (r CreateSlotRequest) Available() bool {
	return r.IsAvailable == nil || *r.IsAvailable
}

type UpdateSlotRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// AvailableSlotsQuery is bound from the query string. Both values are
// checked by the use case so that a missing one is reported as such.
type AvailableSlotsQuery struct {
	Date     string `form:"date"`
	TimeSlot string `form:"time_slot"`
}

func (q AvailableSlotsQuery) HasAll() bool {
	return q.Date != "" && q.TimeSlot != ""
}

func (q AvailableSlotsQuery) ToDomain() (booking.Date, booking.TimeSlot, error) {
	date, err := booking.ParseDate(q.Date)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, err
	}
	timeSlot, err := booking.NewTimeSlot(q.TimeSlot)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, err
	}
	return date, timeSlot, nil
}
