package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/metrics"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

// IntentService records travel intents. Duplicates are allowed: the summary
// shows a count of intents per bus, not unique travelers.
type IntentService struct {
	DB        *sql.DB
	Metrics   *metrics.Metrics
	RequestID string
}

func (s IntentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s IntentService) metrics() *metrics.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return metrics.Default
}

func (s IntentService) Submit(ctx context.Context, studentID string, busID int64) (models.Intent, error) {
	out, err := s.submit(ctx, studentID, busID)
	s.metrics().Intents.WithLabelValues(metrics.Result(err, errorKind)).Inc()
	if err != nil {
		return out, err
	}
	utils.LogEvent(s.RequestID, "intent", "submit", fmt.Sprintf("bus_id=%d intent_id=%d", busID, out.ID))
	return out, nil
}

func (s IntentService) submit(ctx context.Context, studentID string, busID int64) (models.Intent, error) {
	sid := utils.TrimOrEmpty(studentID)
	if sid == "" {
		return models.Intent{}, domain.ValidationError{Field: "student_id", Msg: "student id wajib diisi"}
	}
	if tooLong(sid, maxStudentIDLen) {
		return models.Intent{}, domain.ValidationError{Field: "student_id", Msg: "student id terlalu panjang"}
	}
	if busID <= 0 {
		return models.Intent{}, domain.ValidationError{Field: "bus_id", Msg: "id bus tidak valid"}
	}

	db := dbtx(s.db())
	exists, err := repositories.BusRepository{DB: db}.Exists(ctx, busID)
	if err != nil {
		return models.Intent{}, storeErr("check bus", err)
	}
	if !exists {
		return models.Intent{}, domain.NotFoundError{Resource: "bus", Err: domain.ErrBusNotFound}
	}

	id, err := repositories.IntentRepository{DB: db}.Insert(ctx, sid, busID)
	if err != nil {
		return models.Intent{}, storeErr("insert intent", err)
	}
	return models.Intent{ID: id, StudentID: sid, BusID: busID, SeatReserved: false}, nil
}
