package repositories

import (
	"context"

	"shuttle/internal/domain/models"
)

type SeatRepository struct {
	DB DBTX
}

func (r SeatRepository) List(ctx context.Context) ([]models.Seat, error) {
	db := resolve(r.DB)
	if db == nil {
		return nil, ErrNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT bus_id, COALESCE(available_seats,0) FROM seats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.BusID, &s.AvailableSeats); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByBusID returns sql.ErrNoRows when the bus has no seat row.
func (r SeatRepository) GetByBusID(ctx context.Context, busID int64) (models.Seat, error) {
	s := models.Seat{BusID: busID}
	db := resolve(r.DB)
	if db == nil {
		return s, ErrNoDB
	}
	err := db.QueryRowContext(ctx, `SELECT COALESCE(available_seats,0) FROM seats WHERE bus_id=? LIMIT 1`, busID).Scan(&s.AvailableSeats)
	return s, err
}

// DecrementIfAvailable takes one seat in a single conditional write. It
// returns false when the bus has no seat row or no seat left.
func (r SeatRepository) DecrementIfAvailable(ctx context.Context, busID int64) (bool, error) {
	db := resolve(r.DB)
	if db == nil {
		return false, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `UPDATE seats SET available_seats = available_seats - 1 WHERE bus_id=? AND available_seats > 0`, busID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetAvailable overwrites the counter; it reports the rows matched by bus_id.
func (r SeatRepository) SetAvailable(ctx context.Context, busID int64, available int) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `UPDATE seats SET available_seats=? WHERE bus_id=?`, available, busID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r SeatRepository) Insert(ctx context.Context, busID int64, available int) error {
	db := resolve(r.DB)
	if db == nil {
		return ErrNoDB
	}
	_, err := db.ExecContext(ctx, `INSERT INTO seats (bus_id, available_seats) VALUES (?, ?)`, busID, available)
	return err
}
