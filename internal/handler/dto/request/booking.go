package request

import (
	"parking-reservation/internal/domain/booking"

	"github.com/google/uuid"
)

// CreateBookingRequest accepts user and status so that clients sending
// them are not rejected as unknown fields. Both are ignored: the owner is
// the caller and a new booking is always booked.
type CreateBookingRequest struct {
	ParkingSlot uuid.UUID `json:"parking_slot" binding:"required"`
	BookingDate string    `json:"booking_date" binding:"required"`
	TimeSlot    string    `json:"time_slot" binding:"required,max=20"`
	User        any       `json:"user,omitempty"`
	Status      any       `json:"status,omitempty"`
}

func (r CreateBookingRequest) ToDomain() (booking.Date, booking.TimeSlot, error) {
	date, err := booking.ParseDate(r.BookingDate)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, err
	}
	timeSlot, err := booking.NewTimeSlot(r.TimeSlot)
	if err != nil {
		return booking.Date{}, booking.TimeSlot{}, err
	}
	return date, timeSlot, nil
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateBookingRequest) ToDomain() (booking.Status, error) {
	return booking.NewStatus(r.Status)
}

type ListBookingsQuery struct {
	Status string `form:"status"`
}

// ToDomain returns nil when no filter was given.
func (q ListBookingsQuery) ToDomain() (*booking.Status, error) {
	if q.Status == "" {
		return nil, nil
	}
	st, err := booking.NewStatus(q.Status)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
