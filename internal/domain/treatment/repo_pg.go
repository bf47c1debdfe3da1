package treatment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const treatmentCols = `id, name, price, slots, created_at, updated_at`

func (r *repoPG) scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.Name, &t.Price, &t.Slots, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO treatment (id, name, price, slots)
		VALUES ($1,$2,$3,$4)`,
		t.ID, t.Name, t.Price, t.Slots)
	return err
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*Treatment, error) {
	return r.scanTreatment(r.pool.QueryRow(ctx,
		`SELECT `+treatmentCols+` FROM treatment WHERE name = $1`, name))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Treatment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM treatment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+treatmentCols+` FROM treatment ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := r.scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Treatment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+treatmentCols+` FROM treatment ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := r.scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}

// AvailabilityByDate unnests each template with its ordinal, drops the
// labels booked for this treatment on the date, and re-aggregates in
// ordinal order, so the output matches RemainingSlots element for element.
func (r *repoPG) AvailabilityByDate(ctx context.Context, date string) ([]*Availability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.name, t.price,
			COALESCE((
				SELECT array_agg(s.slot ORDER BY s.ord)
				FROM unnest(t.slots) WITH ORDINALITY AS s(slot, ord)
				WHERE NOT EXISTS (
					SELECT 1 FROM booking b
					WHERE b.treatment = t.name
					  AND b.appointment_date = $1
					  AND b.slot = s.slot
				)
			), '{}') AS remaining
		FROM treatment t
		ORDER BY t.name ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*Availability, 0)
	for rows.Next() {
		var a Availability
		if err := rows.Scan(&a.TreatmentName, &a.Price, &a.RemainingSlots); err != nil {
			return nil, err
		}
		if a.RemainingSlots == nil {
			a.RemainingSlots = []string{}
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM treatment WHERE id = $1`, id)
	return err
}
