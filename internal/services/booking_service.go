package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/metrics"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

// BookingService moves one seat from available to occupied.
type BookingService struct {
	DB        *sql.DB
	Metrics   *metrics.Metrics
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) metrics() *metrics.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return metrics.Default
}

// BookSeat books one seat on busID for userName.
//
// The seat counter is decremented first with a conditional write
// (available_seats > 0), then the occupancy row is inserted, all in one
// transaction. Concurrent bookings therefore never drive the counter below
// zero, and a failure leaves no partial write behind.
func (s BookingService) BookSeat(ctx context.Context, busID int64, userName string) (models.Booking, error) {
	out, err := s.bookSeat(ctx, busID, userName)
	s.metrics().Bookings.WithLabelValues(metrics.Result(err, errorKind)).Inc()
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "book_seat_rejected", fmt.Sprintf("bus_id=%d reason=%s", busID, errorKind(err)))
		return out, err
	}
	utils.LogEvent(s.RequestID, "booking", "book_seat", fmt.Sprintf("bus_id=%d occupancy_id=%d remaining=%d", busID, out.OccupancyID, out.RemainingSeats))
	return out, nil
}

func (s BookingService) bookSeat(ctx context.Context, busID int64, userName string) (models.Booking, error) {
	name := utils.NormalizeSpace(userName)
	if busID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "bus_id", Msg: "id bus tidak valid"}
	}
	if name == "" {
		return models.Booking{}, domain.ValidationError{Field: "user_name", Msg: "nama wajib diisi"}
	}
	if tooLong(name, maxUserNameLen) {
		return models.Booking{}, domain.ValidationError{Field: "user_name", Msg: "nama terlalu panjang"}
	}

	var out models.Booking
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		seats := repositories.SeatRepository{DB: tx}
		occupancy := repositories.OccupancyRepository{DB: tx}

		bus, err := buses.GetByID(ctx, busID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "bus", Err: domain.ErrBusNotFound}
		}
		if err != nil {
			return storeErr("load bus", err)
		}

		taken, err := seats.DecrementIfAvailable(ctx, busID)
		if err != nil {
			return storeErr("decrement seat", err)
		}
		if !taken {
			return domain.ConflictError{Resource: "seat", Err: domain.ErrSeatsExhausted}
		}

		occID, err := occupancy.Insert(ctx, busID, name)
		if err != nil {
			return storeErr("insert occupancy", err)
		}

		seat, err := seats.GetByBusID(ctx, busID)
		if err != nil {
			return storeErr("reload seat", err)
		}

		out = models.Booking{
			OccupancyID:    occID,
			BusID:          busID,
			BusNumber:      bus.Number,
			UserName:       name,
			RemainingSeats: seat.AvailableSeats,
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, storeErr("book seat", err)
	}
	return out, nil
}
