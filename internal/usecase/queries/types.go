package queries

import (
	"time"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/domain/user"

	"github.com/google/uuid"
)

// SlotView represents read-optimized parking slot data
type SlotView struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	ParkingType string    `json:"parking_type"`
	DisplayName string    `json:"display_name"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummary is the owner block embedded in booking views
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// BookingView represents a booking with its slot and owner resolved
type BookingView struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user"`
	User        UserSummary `json:"user_details"`
	SlotID      uuid.UUID   `json:"parking_slot"`
	Slot        SlotView    `json:"parking_slot_details"`
	BookingDate string      `json:"booking_date"`
	TimeSlot    string      `json:"time_slot"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToSlotView(s *slot.Slot) *SlotView {
	return &SlotView{
		ID:          s.ID(),
		Number:      s.Number().Value(),
		ParkingType: s.Type().String(),
		DisplayName: s.String(),
		IsAvailable: s.IsAvailable(),
		CreatedAt:   s.CreatedAt(),
	}
}

func ToSlotViews(slots []*slot.Slot) []*SlotView {
	views := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, ToSlotView(s))
	}
	return views
}

func ToAuthorizedUserView(u *user.User) *AuthorizedUserView {
	return &AuthorizedUserView{
		ID:        u.ID(),
		Username:  u.Username().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		LastLogin: u.LastLogin(),
		CreatedAt: u.CreatedAt(),
	}
}

func ToBookingView(b *booking.Booking, s *slot.Slot, owner *user.User) *BookingView {
	return &BookingView{
		ID:     b.ID(),
		UserID: b.UserID(),
		User: UserSummary{
			ID:       owner.ID(),
			Username: owner.Username().Value(),
		},
		SlotID:      b.SlotID(),
		Slot:        *ToSlotView(s),
		BookingDate: b.Date().String(),
		TimeSlot:    b.TimeSlot().Value(),
		Status:      b.Status().String(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}
