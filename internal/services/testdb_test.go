package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	"shuttle/internal/metrics"

	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
)

// newSQLiteDB returns an isolated in-memory store with the shuttle schema.
func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	db, err := intconfig.OpenDB(intconfig.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := intdb.EnsureSchema(context.Background(), db, intconfig.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func seedBus(t *testing.T, db *sql.DB, id int64, number string, total, available int) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO buses (bus_id, bus_number, total_seats) VALUES (?, ?, ?)`, id, number, total); err != nil {
		t.Fatalf("seed bus: %v", err)
	}
	if available >= 0 {
		if _, err := db.Exec(`INSERT INTO seats (bus_id, available_seats) VALUES (?, ?)`, id, available); err != nil {
			t.Fatalf("seed seats: %v", err)
		}
	}
}

func seedStop(t *testing.T, db *sql.DB, busID int64, name, at string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO routes (bus_id, stop_name, stop_time) VALUES (?, ?, ?)`, busID, name, at)
	if err != nil {
		t.Fatalf("seed stop: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count %q: %v", query, err)
	}
	return n
}

func availableSeats(t *testing.T, db *sql.DB, busID int64) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT available_seats FROM seats WHERE bus_id=?`, busID).Scan(&n); err != nil {
		t.Fatalf("read seats: %v", err)
	}
	return n
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

var mysqlDuplicate = mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"}
