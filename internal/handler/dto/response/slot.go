package response

import (
	"time"

	"parking-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	ParkingType string    `json:"parking_type"`
	DisplayName string    `json:"display_name"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	var res SlotResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

// FromSlotViews never returns nil so an empty list renders as [].
func FromSlotViews(vs []*queries.SlotView) ([]*SlotResponse, error) {
	res := make([]*SlotResponse, 0, len(vs))
	for _, v := range vs {
		s, err := FromSlotView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}
