//go:build unit || e2e

package builder

import (
	"time"

	"parking-reservation/internal/domain/booking"
	reqdto "parking-reservation/internal/handler/dto/request"
	"parking-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Username    string
	Slot        *SlotBuilder
	BookingDate string
	TimeSlot    string
	Status      string
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Username:    "alice",
		Slot:        NewSlotBuilder(),
		BookingDate: "2025-06-01",
		TimeSlot:    "09:00-10:00",
		Status:      "booked",
		CreatedAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	date, err := booking.ParseDate(b.BookingDate)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(b.ID, b.UserID, b.Slot.ID, date.Time(), b.TimeSlot, status, b.CreatedAt, b.CreatedAt), nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		UserID:      b.UserID,
		User:        queries.UserSummary{ID: b.UserID, Username: b.Username},
		SlotID:      b.Slot.ID,
		Slot:        *b.Slot.BuildView(),
		BookingDate: b.BookingDate,
		TimeSlot:    b.TimeSlot,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ParkingSlot: b.Slot.ID,
		BookingDate: b.BookingDate,
		TimeSlot:    b.TimeSlot,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithSlot(s *SlotBuilder) *BookingBuilder {
	b.Slot = s
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.BookingDate = date
	return b
}

func (b *BookingBuilder) WithTimeSlot(timeSlot string) *BookingBuilder {
	b.TimeSlot = timeSlot
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}
