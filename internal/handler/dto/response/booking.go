package response

import (
	"time"

	"parking-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type BookingResponse struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"user"`
	User        UserSummaryResponse `json:"user_details"`
	SlotID      uuid.UUID           `json:"parking_slot"`
	Slot        SlotResponse        `json:"parking_slot_details"`
	BookingDate string              `json:"booking_date"`
	TimeSlot    string              `json:"time_slot"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(vs []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, 0, len(vs))
	for _, v := range vs {
		b, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, nil
}
