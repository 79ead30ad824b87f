package repositories

import (
	"context"
	"regexp"
	"testing"

	"shuttle/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRouteRepository_ListByBusIDTrims(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "bus_id", "stop_name", "stop_time"}).
		AddRow(1, 2, " Gate ", "08:15 ").
		AddRow(2, 2, "Library", "")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM routes WHERE bus_id=? ORDER BY id ASC`)).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	stops, err := RouteRepository{DB: db}.ListByBusID(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}
	if stops[0].StopName != "Gate" || stops[0].StopTime != "08:15" {
		t.Fatalf("values not trimmed: %+v", stops[0])
	}
}

func TestRouteRepository_UpdateScopedToBus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE routes SET stop_name=?, stop_time=? WHERE id=? AND bus_id=?`)).
		WithArgs("Hostel", "09:00", int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := RouteRepository{DB: db}.Update(context.Background(), models.RouteStop{ID: 7, BusID: 2, StopName: "Hostel", StopTime: "09:00"})
	if err != nil || n != 1 {
		t.Fatalf("update: n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
