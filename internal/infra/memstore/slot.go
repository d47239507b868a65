package memstore

import (
	"context"

	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/infra"

	"github.com/google/uuid"
)

type slotRepository struct {
	tx *memTx
}

func (r *slotRepository) Create(_ context.Context, s *slot.Slot) error {
	if err := r.tx.checkWritable("create slot"); err != nil {
		return err
	}
	for _, rec := range r.tx.st.slots {
		if rec.Number == s.Number().Value() {
			return infra.WrapRepoErr("slot number already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.st.slots[s.ID()] = slotRecord{
		ID:          s.ID(),
		Number:      s.Number().Value(),
		Type:        s.Type().String(),
		IsAvailable: s.IsAvailable(),
		CreatedAt:   s.CreatedAt(),
	}
	return nil
}

func (r *slotRepository) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	rec, ok := r.tx.st.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return toSlot(rec), nil
}

func (r *slotRepository) FindByNumber(_ context.Context, number slot.Number) (*slot.Slot, error) {
	for _, rec := range r.tx.st.slots {
		if rec.Number == number.Value() {
			return toSlot(rec), nil
		}
	}
	return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
}

func (r *slotRepository) List(_ context.Context) ([]*slot.Slot, error) {
	out := make([]*slot.Slot, 0, len(r.tx.st.slots))
	for _, rec := range r.tx.st.slots {
		out = append(out, toSlot(rec))
	}
	slot.SortByNumber(out)
	return out, nil
}

func (r *slotRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*slot.Slot, error) {
	out := make([]*slot.Slot, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.tx.st.slots[id]; ok {
			out = append(out, toSlot(rec))
		}
	}
	slot.SortByNumber(out)
	return out, nil
}

func (r *slotRepository) UpdateAvailability(_ context.Context, id uuid.UUID, available bool) error {
	if err := r.tx.checkWritable("update slot"); err != nil {
		return err
	}
	rec, ok := r.tx.st.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	rec.IsAvailable = available
	r.tx.st.slots[id] = rec
	return nil
}

func toSlot(rec slotRecord) *slot.Slot {
	return slot.Reconstruct(rec.ID, rec.Number, slot.Type(rec.Type), rec.IsAvailable, rec.CreatedAt)
}
