package repositories

import (
	"context"

	"shuttle/internal/domain/models"
)

type IntentRepository struct {
	DB DBTX
}

func (r IntentRepository) List(ctx context.Context) ([]models.Intent, error) {
	db := resolve(r.DB)
	if db == nil {
		return nil, ErrNoDB
	}
	rows, err := db.QueryContext(ctx, `SELECT id, COALESCE(student_id,''), bus_id, seat_reserved FROM intent_to_travel ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Intent{}
	for rows.Next() {
		var it models.Intent
		if err := rows.Scan(&it.ID, &it.StudentID, &it.BusID, &it.SeatReserved); err != nil {
			return out, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Insert always writes seat_reserved=false.
func (r IntentRepository) Insert(ctx context.Context, studentID string, busID int64) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `INSERT INTO intent_to_travel (student_id, bus_id, seat_reserved) VALUES (?, ?, ?)`, studentID, busID, false)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CountByBus counts intents per bus, not unique travelers.
func CountByBus(intents []models.Intent) map[int64]int {
	out := map[int64]int{}
	for _, it := range intents {
		if it.BusID != 0 {
			out[it.BusID]++
		}
	}
	return out
}
