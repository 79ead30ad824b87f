package repositories

import (
	"context"
	"database/sql"
	"strings"

	"shuttle/internal/domain/models"
)

type OccupancyRepository struct {
	DB DBTX
}

func (r OccupancyRepository) Insert(ctx context.Context, busID int64, userName string) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `INSERT INTO occupancy (bus_id, user_name) VALUES (?, ?)`, busID, userName)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID returns sql.ErrNoRows when the record does not exist.
func (r OccupancyRepository) GetByID(ctx context.Context, id int64) (models.Occupancy, error) {
	var o models.Occupancy
	db := resolve(r.DB)
	if db == nil {
		return o, ErrNoDB
	}
	var created sql.NullTime
	err := db.QueryRowContext(ctx, `SELECT id, bus_id, COALESCE(user_name,''), created_at FROM occupancy WHERE id=? LIMIT 1`, id).
		Scan(&o.ID, &o.BusID, &o.UserName, &created)
	o.UserName = strings.TrimSpace(o.UserName)
	if created.Valid {
		o.CreatedAt = created.Time
	}
	return o, err
}
