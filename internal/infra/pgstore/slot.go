package pgstore

import (
	"context"
	"time"

	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var slotColumns = []string{"id", "number", "parking_type", "is_available", "created_at"}

type SlotRepository struct {
	db DBTX
}

func NewSlotRepository(db DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	query, args, err := psql.Insert("parking_slots").
		Columns(slotColumns...).
		Values(s.ID(), s.Number().Value(), s.Type().String(), s.IsAvailable(), s.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("slot number already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert slot", err)
	}
	return nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *SlotRepository) FindByNumber(ctx context.Context, number slot.Number) (*slot.Slot, error) {
	return r.findOne(ctx, sq.Eq{"number": number.Value()})
}

func (r *SlotRepository) findOne(ctx context.Context, where sq.Eq) (*slot.Slot, error) {
	query, args, err := psql.Select(slotColumns...).
		From("parking_slots").
		Where(where).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot select", err)
	}

	s, err := scanSlot(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}
	return s, nil
}

func (r *SlotRepository) List(ctx context.Context) ([]*slot.Slot, error) {
	return r.list(ctx, nil)
}

func (r *SlotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*slot.Slot, error) {
	if len(ids) == 0 {
		return []*slot.Slot{}, nil
	}
	return r.list(ctx, sq.Eq{"id": ids})
}

func (r *SlotRepository) list(ctx context.Context, where sq.Sqlizer) ([]*slot.Slot, error) {
	builder := psql.Select(slotColumns...).
		From("parking_slots").
		OrderBy("length(number)", `number COLLATE "C"`)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build slot list", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	out := []*slot.Slot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return out, nil
}

func (r *SlotRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query, args, err := psql.Update("parking_slots").
		Set("is_available", available).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		id          uuid.UUID
		number      string
		parkingType string
		isAvailable bool
		createdAt   time.Time
	)
	if err := row.Scan(&id, &number, &parkingType, &isAvailable, &createdAt); err != nil {
		return nil, err
	}
	return slot.Reconstruct(id, number, slot.Type(parkingType), isAvailable, createdAt.UTC()), nil
}
