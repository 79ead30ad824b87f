package repositories

import (
	"context"
	"strings"

	"shuttle/internal/domain/models"
)

type BusRepository struct {
	DB DBTX
}

func (r BusRepository) List(ctx context.Context) ([]models.Bus, error) {
	db := resolve(r.DB)
	if db == nil {
		return nil, ErrNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT bus_id, COALESCE(bus_number,''), COALESCE(total_seats,0) FROM buses ORDER BY bus_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.Number, &b.TotalSeats); err != nil {
			return out, err
		}
		b.Number = strings.TrimSpace(b.Number)
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the bus does not exist.
func (r BusRepository) GetByID(ctx context.Context, id int64) (models.Bus, error) {
	var b models.Bus
	db := resolve(r.DB)
	if db == nil {
		return b, ErrNoDB
	}
	err := db.QueryRowContext(ctx, `SELECT bus_id, COALESCE(bus_number,''), COALESCE(total_seats,0) FROM buses WHERE bus_id=? LIMIT 1`, id).
		Scan(&b.ID, &b.Number, &b.TotalSeats)
	b.Number = strings.TrimSpace(b.Number)
	return b, err
}

func (r BusRepository) Exists(ctx context.Context, id int64) (bool, error) {
	db := resolve(r.DB)
	if db == nil {
		return false, ErrNoDB
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM buses WHERE bus_id=?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update sets number and capacity; it reports the rows matched by bus_id.
func (r BusRepository) Update(ctx context.Context, id int64, number string, totalSeats int) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `UPDATE buses SET bus_number=?, total_seats=? WHERE bus_id=?`, number, totalSeats, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
