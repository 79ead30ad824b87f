package services

import (
	"context"
	"database/sql"
	"errors"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// BusSummary is the rider-facing view of one bus.
type BusSummary struct {
	BusID        int64                `json:"bus_id"`
	BusNumber    string               `json:"bus_number"`
	Route        []domain.OrderedStop `json:"route"`
	RouteLabel   string               `json:"route_label"`
	IntentCount  int                  `json:"intent_count"`
	Availability domain.Availability  `json:"availability"`
}

// DashboardRow is one line of the admin overview table.
type DashboardRow struct {
	BusID          int64  `json:"bus_id"`
	BusNumber      string `json:"bus_number"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	HasSeatRow     bool   `json:"has_seat_row"`
	IntentCount    int    `json:"intent_count"`
}

// SummaryService builds read-only views. Reads are best-effort snapshots:
// the tables are loaded concurrently, not in one transaction.
type SummaryService struct {
	DB *sql.DB
}

func (s SummaryService) db() repositories.DBTX {
	if s.DB != nil {
		return s.DB
	}
	return dbtx(intconfig.DB)
}

type snapshot struct {
	buses   []models.Bus
	seats   []models.Seat
	routes  []models.RouteStop
	intents []models.Intent
}

func (s SummaryService) load(ctx context.Context, withRoutes bool) (snapshot, error) {
	var snap snapshot
	db := s.db()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.buses, err = repositories.BusRepository{DB: db}.List(gctx)
		return storeErr("list buses", err)
	})
	g.Go(func() (err error) {
		snap.seats, err = repositories.SeatRepository{DB: db}.List(gctx)
		return storeErr("list seats", err)
	})
	if withRoutes {
		g.Go(func() (err error) {
			snap.routes, err = repositories.RouteRepository{DB: db}.List(gctx)
			return storeErr("list routes", err)
		})
	}
	g.Go(func() (err error) {
		snap.intents, err = repositories.IntentRepository{DB: db}.List(gctx)
		return storeErr("list intents", err)
	})

	return snap, g.Wait()
}

// ListBuses returns all buses.
func (s SummaryService) ListBuses(ctx context.Context) ([]models.Bus, error) {
	buses, err := repositories.BusRepository{DB: s.db()}.List(ctx)
	if err != nil {
		return nil, storeErr("list buses", err)
	}
	return buses, nil
}

// Summaries returns one entry per bus. A bus without a seat row counts as
// zero seats available.
func (s SummaryService) Summaries(ctx context.Context) ([]BusSummary, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}

	seatMap := make(map[int64]int, len(snap.seats))
	for _, st := range snap.seats {
		seatMap[st.BusID] = st.AvailableSeats
	}
	routeMap := domain.BuildRouteMap(snap.routes)
	intentCount := repositories.CountByBus(snap.intents)

	out := make([]BusSummary, 0, len(snap.buses))
	for _, b := range snap.buses {
		route := routeMap[b.ID]
		if route == nil {
			route = []domain.OrderedStop{}
		}
		out = append(out, BusSummary{
			BusID:        b.ID,
			BusNumber:    b.Number,
			Route:        route,
			RouteLabel:   domain.RouteLabel(route),
			IntentCount:  intentCount[b.ID],
			Availability: domain.ComputeAvailability(b.TotalSeats, seatMap[b.ID]),
		})
	}
	return out, nil
}

// Route returns the ordered stops of one bus.
func (s SummaryService) Route(ctx context.Context, busID int64) ([]domain.OrderedStop, error) {
	if busID <= 0 {
		return nil, domain.ValidationError{Field: "bus_id", Msg: "id bus tidak valid"}
	}
	db := s.db()
	if _, err := (repositories.BusRepository{DB: db}).GetByID(ctx, busID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "bus", Err: domain.ErrBusNotFound}
		}
		return nil, storeErr("load bus", err)
	}
	stops, err := repositories.RouteRepository{DB: db}.ListByBusID(ctx, busID)
	if err != nil {
		return nil, storeErr("list routes", err)
	}
	return domain.RouteFor(stops, busID), nil
}

// Dashboard lists buses for the admin table. Unlike Summaries, a bus without
// a seat row shows its total capacity as available.
func (s SummaryService) Dashboard(ctx context.Context) ([]DashboardRow, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}

	seatMap := make(map[int64]int, len(snap.seats))
	for _, st := range snap.seats {
		seatMap[st.BusID] = st.AvailableSeats
	}
	intentCount := repositories.CountByBus(snap.intents)

	out := make([]DashboardRow, 0, len(snap.buses))
	for _, b := range snap.buses {
		available, ok := seatMap[b.ID]
		if !ok {
			available = b.TotalSeats
		}
		out = append(out, DashboardRow{
			BusID:          b.ID,
			BusNumber:      b.Number,
			TotalSeats:     b.TotalSeats,
			AvailableSeats: available,
			HasSeatRow:     ok,
			IntentCount:    intentCount[b.ID],
		})
	}
	return out, nil
}
