package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const bookingCols = `id, treatment, appointment_date, slot, email, patient_name, price, paid, transaction_id, created_at, updated_at`

func (r *repoPG) scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.Treatment, &b.AppointmentDate, &b.Slot, &b.Email,
		&b.PatientName, &b.Price, &b.Paid, &b.TransactionID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &b, err
}

func (r *repoPG) Create(ctx context.Context, b *Booking) error {
	b.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO booking (id, treatment, appointment_date, slot, email, patient_name, price)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.Treatment, b.AppointmentDate, b.Slot, b.Email, b.PatientName, b.Price)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM booking WHERE id = $1`, id))
}

func (r *repoPG) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+` FROM booking WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*Booking, 0)
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *repoPG) ExistsTriple(ctx context.Context, email, treatment, appointmentDate string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM booking
			WHERE email = $1 AND treatment = $2 AND appointment_date = $3
		)`, email, treatment, appointmentDate).Scan(&exists)
	return exists, err
}

func (r *repoPG) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE booking
		SET paid = true, transaction_id = $2, updated_at = now()
		WHERE id = $1`, id, transactionID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) SlotsBookedOn(ctx context.Context, date string) (map[string][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT treatment, slot FROM booking WHERE appointment_date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byTreatment := make(map[string][]string)
	for rows.Next() {
		var treatment, slot string
		if err := rows.Scan(&treatment, &slot); err != nil {
			return nil, err
		}
		byTreatment[treatment] = append(byTreatment[treatment], slot)
	}
	return byTreatment, rows.Err()
}
