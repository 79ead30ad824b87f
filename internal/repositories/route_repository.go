package repositories

import (
	"context"
	"strings"

	"shuttle/internal/domain/models"
)

type RouteRepository struct {
	DB DBTX
}

const routeColumns = `id, bus_id, COALESCE(stop_name,''), COALESCE(stop_time,'')`

func (r RouteRepository) List(ctx context.Context) ([]models.RouteStop, error) {
	return r.query(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY id ASC`)
}

func (r RouteRepository) ListByBusID(ctx context.Context, busID int64) ([]models.RouteStop, error) {
	return r.query(ctx, `SELECT `+routeColumns+` FROM routes WHERE bus_id=? ORDER BY id ASC`, busID)
}

func (r RouteRepository) query(ctx context.Context, query string, args ...any) ([]models.RouteStop, error) {
	db := resolve(r.DB)
	if db == nil {
		return nil, ErrNoDB
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteStop{}
	for rows.Next() {
		var s models.RouteStop
		if err := rows.Scan(&s.ID, &s.BusID, &s.StopName, &s.StopTime); err != nil {
			return out, err
		}
		s.StopName = strings.TrimSpace(s.StopName)
		s.StopTime = strings.TrimSpace(s.StopTime)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r RouteRepository) Insert(ctx context.Context, stop models.RouteStop) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `INSERT INTO routes (bus_id, stop_name, stop_time) VALUES (?, ?, ?)`, stop.BusID, stop.StopName, stop.StopTime)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update edits one stop by its own id, scoped to its bus.
func (r RouteRepository) Update(ctx context.Context, stop models.RouteStop) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `UPDATE routes SET stop_name=?, stop_time=? WHERE id=? AND bus_id=?`, stop.StopName, stop.StopTime, stop.ID, stop.BusID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
