package pgstore

import (
	"context"
	"time"

	"parking-reservation/internal/domain/booking"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const activeSlotIndex = "uq_bookings_active_slot"

var bookingColumns = []string{
	"id",
	"user_id",
	"parking_slot_id",
	"booking_date",
	"time_slot",
	"status",
	"created_at",
	"updated_at",
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func activeTriple(slotID uuid.UUID, date booking.Date, timeSlot booking.TimeSlot) sq.Eq {
	return sq.Eq{
		"parking_slot_id": slotID,
		"booking_date":    pgconv.DateToPgtype(date.Time()),
		"time_slot":       timeSlot.Value(),
		"status":          booking.StatusBooked.String(),
	}
}

func (r *BookingRepository) ExistsConflict(ctx context.Context, slotID uuid.UUID, date booking.Date, timeSlot booking.TimeSlot) (bool, error) {
	sub := psql.Select("1").From("bookings").Where(activeTriple(slotID, date, timeSlot))
	query, args, err := psql.Select().Column(sq.Expr("EXISTS(?)", sub)).ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build conflict check", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking conflict", err)
	}
	return exists, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID(),
			b.UserID(),
			b.SlotID(),
			pgconv.DateToPgtype(b.Date().Time()),
			b.TimeSlot().Value(),
			b.Status().String(),
			b.CreatedAt(),
			b.UpdatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		switch {
		case pgconv.IsUniqueViolationOn(err, activeSlotIndex):
			return infra.WrapRepoErr("active booking exists for slot, date and time slot", err, infra.KindConflict)
		case pgconv.IsUniqueViolation(err):
			return infra.WrapRepoErr("booking already exists", err, infra.KindDuplicateKey)
		case pgconv.IsForeignKeyViolation(err):
			return infra.WrapRepoErr("booking references unknown slot or user", err, infra.KindForeignKeyViolated)
		default:
			return infra.WrapRepoErr("failed to insert booking", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, id, "")
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, id, "FOR UPDATE")
}

func (r *BookingRepository) findOne(ctx context.Context, id uuid.UUID, suffix string) (*booking.Booking, error) {
	builder := psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *booking.Status) ([]*booking.Booking, error) {
	where := sq.Eq{"user_id": userID}
	if status != nil {
		where["status"] = status.String()
	}

	return r.list(ctx, psql.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("created_at DESC", "id DESC"))
}

func (r *BookingRepository) ListBookedBefore(ctx context.Context, date booking.Date) ([]*booking.Booking, error) {
	return r.list(ctx, psql.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"status": booking.StatusBooked.String()}).
		Where(sq.Lt{"booking_date": pgconv.DateToPgtype(date.Time())}).
		OrderBy("booking_date", "created_at"))
}

func (r *BookingRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]*booking.Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	out := []*booking.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func (r *BookingRepository) BookedSlotIDs(ctx context.Context, date booking.Date, timeSlot booking.TimeSlot) ([]uuid.UUID, error) {
	query, args, err := psql.Select("parking_slot_id").
		From("bookings").
		Where(sq.Eq{
			"booking_date": pgconv.DateToPgtype(date.Time()),
			"time_slot":    timeSlot.Value(),
			"status":       booking.StatusBooked.String(),
		}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booked slot query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked slots", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booked slots", err)
	}
	return ids, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	query, args, err := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID(), "status": from.String()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if pgconv.IsUniqueViolationOn(err, activeSlotIndex) {
			return infra.WrapRepoErr("active booking exists for slot, date and time slot", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, userID, slotID   uuid.UUID
		date                 pgtype.Date
		timeSlot, status     string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &slotID, &date, &timeSlot, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		id, userID, slotID,
		date.Time,
		timeSlot,
		booking.Status(status),
		createdAt.UTC(), updatedAt.UTC(),
	), nil
}
