package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/metrics"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles admin registration, login sessions and the edit
// transitions on buses, seats and routes.
type AdminService struct {
	DB        *sql.DB
	Sessions  *SessionStore
	Secret    []byte
	TTL       time.Duration
	HashCost  int
	Now       func() time.Time
	Metrics   *metrics.Metrics
	RequestID string
}

var passwordTooLong = domain.ValidationError{Field: "password", Msg: "password maksimal 72 byte"}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (s AdminService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AdminService) cost() int {
	if s.HashCost > 0 {
		return s.HashCost
	}
	return bcrypt.DefaultCost
}

func (s AdminService) metrics() *metrics.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return metrics.Default
}

func (s AdminService) sessions() (*SessionStore, error) {
	if s.Sessions == nil {
		return nil, domain.InternalError{Msg: "session store belum diinisialisasi"}
	}
	return s.Sessions, nil
}

// Register creates an admin. The pre-check gives a friendly error; the
// unique key on admins.username decides concurrent registrations.
func (s AdminService) Register(ctx context.Context, username, password, confirm string) (models.Admin, error) {
	name := utils.TrimOrEmpty(username)
	if name == "" {
		return models.Admin{}, domain.ValidationError{Field: "username", Msg: "username wajib diisi"}
	}
	if tooLong(name, maxUsernameLen) {
		return models.Admin{}, domain.ValidationError{Field: "username", Msg: "username terlalu panjang"}
	}
	if password == "" {
		return models.Admin{}, domain.ValidationError{Field: "password", Msg: "password wajib diisi"}
	}
	if len(password) > maxPasswordBytes {
		return models.Admin{}, passwordTooLong
	}
	if password != confirm {
		return models.Admin{}, domain.ValidationError{Field: "confirm_password", Err: domain.ErrPasswordMismatch}
	}

	repo := repositories.AdminRepository{DB: dbtx(s.db())}
	taken, err := repo.ExistsUsername(ctx, name)
	if err != nil {
		return models.Admin{}, storeErr("check username", err)
	}
	if taken {
		return models.Admin{}, domain.ConflictError{Resource: "admin", Err: domain.ErrUsernameTaken}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.Admin{}, passwordTooLong
	}
	if err != nil {
		return models.Admin{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}

	id, err := repo.Insert(ctx, name, string(hash))
	if intdb.IsDuplicateKey(err) {
		return models.Admin{}, domain.ConflictError{Resource: "admin", Err: domain.ErrUsernameTaken}
	}
	if err != nil {
		return models.Admin{}, storeErr("insert admin", err)
	}

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("admin_id=%d username=%s", id, name))
	return models.Admin{ID: id, Username: name, PasswordHash: string(hash)}, nil
}

// RegisterBy is the public registration path: the first admin may sign up
// freely, every later one must be created from a live admin session.
func (s AdminService) RegisterBy(ctx context.Context, sess domain.Session, username, password, confirm string) (models.Admin, error) {
	n, err := repositories.AdminRepository{DB: dbtx(s.db())}.Count(ctx)
	if err != nil {
		return models.Admin{}, storeErr("count admins", err)
	}
	if n > 0 {
		if err := s.requireLogin(sess); err != nil {
			return models.Admin{}, err
		}
	}
	return s.Register(ctx, username, password, confirm)
}

// Bootstrap registers the initial admin when the username is still free.
func (s AdminService) Bootstrap(ctx context.Context, username, password string) error {
	if utils.TrimOrEmpty(username) == "" || password == "" {
		return nil
	}
	_, err := s.Register(ctx, username, password, password)
	if errors.Is(err, domain.ErrUsernameTaken) {
		return nil
	}
	return err
}

// Login verifies credentials and opens a session. The returned token carries
// the session id and is only honoured while the session exists.
func (s AdminService) Login(ctx context.Context, username, password string) (domain.Session, string, error) {
	sess, token, err := s.login(ctx, username, password)
	s.metrics().Logins.WithLabelValues(metrics.Result(err, errorKind)).Inc()
	return sess, token, err
}

func (s AdminService) login(ctx context.Context, username, password string) (domain.Session, string, error) {
	store, err := s.sessions()
	if err != nil {
		return domain.Session{}, "", err
	}
	name := utils.TrimOrEmpty(username)
	invalid := domain.UnauthorizedError{Err: domain.ErrInvalidCredentials}
	if name == "" || password == "" {
		return domain.Session{}, "", invalid
	}

	admin, err := repositories.AdminRepository{DB: dbtx(s.db())}.GetByUsername(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, "", invalid
	}
	if err != nil {
		return domain.Session{}, "", storeErr("load admin", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, "", invalid
	}

	sess := store.Create(admin.Username, s.now(), s.TTL)
	token, err := s.sign(sess)
	if err != nil {
		store.Delete(sess.ID)
		return domain.Session{}, "", domain.InternalError{Msg: "gagal membuat token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "username="+admin.Username)
	return sess, token, nil
}

func (s AdminService) sign(sess domain.Session) (string, error) {
	claims := sessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:       sess.ID,
		Subject:  sess.Username,
		IssuedAt: jwt.NewNumericDate(sess.IssuedAt),
	}}
	if !sess.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(sess.ExpiresAt)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Authenticate resolves a bearer token to its live session.
func (s AdminService) Authenticate(token string) (domain.Session, error) {
	store, err := s.sessions()
	if err != nil {
		return domain.Session{}, err
	}
	unauthorized := domain.UnauthorizedError{Err: domain.ErrNotLoggedIn}
	if token == "" {
		return domain.Session{}, unauthorized
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.Session{}, unauthorized
	}

	sess, ok := store.Get(claims.ID, s.now())
	if !ok || sess.Username != claims.Subject {
		return domain.Session{}, unauthorized
	}
	return sess, nil
}

// Logout ends the session; logging out twice is not an error.
func (s AdminService) Logout(sess domain.Session) {
	if s.Sessions == nil || sess.ID == "" {
		return
	}
	s.Sessions.Delete(sess.ID)
	utils.LogEvent(s.RequestID, "auth", "logout", "username="+sess.Username)
}

func (s AdminService) requireLogin(sess domain.Session) error {
	if !sess.LoggedIn(s.now()) {
		return domain.UnauthorizedError{Err: domain.ErrNotLoggedIn}
	}
	if s.Sessions != nil {
		if _, ok := s.Sessions.Get(sess.ID, s.now()); !ok {
			return domain.UnauthorizedError{Err: domain.ErrNotLoggedIn}
		}
	}
	return nil
}

// UpdateBus applies an admin edit of bus, seat counter and existing stops in
// one transaction. available_seats may not exceed total_seats.
func (s AdminService) UpdateBus(ctx context.Context, sess domain.Session, busID int64, upd models.BusUpdate) (models.Bus, error) {
	out, err := s.updateBus(ctx, sess, busID, upd)
	s.metrics().AdminEdits.WithLabelValues("update_bus", metrics.Result(err, errorKind)).Inc()
	if err == nil {
		utils.LogEvent(s.RequestID, "admin", "update_bus", fmt.Sprintf("bus_id=%d by=%s routes=%d", busID, sess.Username, len(upd.Routes)))
	}
	return out, err
}

func (s AdminService) updateBus(ctx context.Context, sess domain.Session, busID int64, upd models.BusUpdate) (models.Bus, error) {
	if err := s.requireLogin(sess); err != nil {
		return models.Bus{}, err
	}
	if busID <= 0 {
		return models.Bus{}, domain.ValidationError{Field: "bus_id", Msg: "id bus tidak valid"}
	}
	number := utils.NormalizeSpace(upd.Number)
	if number == "" {
		return models.Bus{}, domain.ValidationError{Field: "bus_number", Msg: "nomor bus wajib diisi"}
	}
	if tooLong(number, maxBusNumberLen) {
		return models.Bus{}, domain.ValidationError{Field: "bus_number", Msg: "nomor bus terlalu panjang"}
	}
	if upd.TotalSeats < 0 {
		return models.Bus{}, domain.ValidationError{Field: "total_seats", Msg: "tidak boleh negatif"}
	}
	if upd.AvailableSeats < 0 {
		return models.Bus{}, domain.ValidationError{Field: "available_seats", Msg: "tidak boleh negatif"}
	}
	if upd.AvailableSeats > upd.TotalSeats {
		return models.Bus{}, domain.ValidationError{Field: "available_seats", Msg: "melebihi total kursi"}
	}
	stops := make([]models.RouteStop, 0, len(upd.Routes))
	for _, r := range upd.Routes {
		stop, err := cleanStop(busID, r)
		if err != nil {
			return models.Bus{}, err
		}
		if stop.ID <= 0 {
			return models.Bus{}, domain.ValidationError{Field: "routes.id", Msg: "id rute tidak valid"}
		}
		stops = append(stops, stop)
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		seats := repositories.SeatRepository{DB: tx}
		routes := repositories.RouteRepository{DB: tx}

		exists, err := buses.Exists(ctx, busID)
		if err != nil {
			return storeErr("check bus", err)
		}
		if !exists {
			return domain.NotFoundError{Resource: "bus", Err: domain.ErrBusNotFound}
		}
		if _, err := buses.Update(ctx, busID, number, upd.TotalSeats); err != nil {
			return storeErr("update bus", err)
		}

		_, err = seats.GetByBusID(ctx, busID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := seats.Insert(ctx, busID, upd.AvailableSeats); err != nil {
				return storeErr("insert seat", err)
			}
		case err != nil:
			return storeErr("load seat", err)
		default:
			if _, err := seats.SetAvailable(ctx, busID, upd.AvailableSeats); err != nil {
				return storeErr("update seat", err)
			}
		}

		if len(stops) == 0 {
			return nil
		}
		current, err := routes.ListByBusID(ctx, busID)
		if err != nil {
			return storeErr("list routes", err)
		}
		known := make(map[int64]bool, len(current))
		for _, c := range current {
			known[c.ID] = true
		}
		for _, stop := range stops {
			if !known[stop.ID] {
				return domain.NotFoundError{Resource: fmt.Sprintf("route %d", stop.ID)}
			}
			if _, err := routes.Update(ctx, stop); err != nil {
				return storeErr("update route", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Bus{}, storeErr("update bus", err)
	}
	return models.Bus{ID: busID, Number: number, TotalSeats: upd.TotalSeats}, nil
}

// AddRoute appends a stop to a bus.
func (s AdminService) AddRoute(ctx context.Context, sess domain.Session, busID int64, stopName, stopTime string) (models.RouteStop, error) {
	out, err := s.addRoute(ctx, sess, busID, stopName, stopTime)
	s.metrics().AdminEdits.WithLabelValues("add_route", metrics.Result(err, errorKind)).Inc()
	if err == nil {
		utils.LogEvent(s.RequestID, "admin", "add_route", fmt.Sprintf("bus_id=%d route_id=%d by=%s", busID, out.ID, sess.Username))
	}
	return out, err
}

func (s AdminService) addRoute(ctx context.Context, sess domain.Session, busID int64, stopName, stopTime string) (models.RouteStop, error) {
	if err := s.requireLogin(sess); err != nil {
		return models.RouteStop{}, err
	}
	if busID <= 0 {
		return models.RouteStop{}, domain.ValidationError{Field: "bus_id", Msg: "id bus tidak valid"}
	}
	stop, err := cleanStop(busID, models.RouteStop{StopName: stopName, StopTime: stopTime})
	if err != nil {
		return models.RouteStop{}, err
	}

	db := dbtx(s.db())
	exists, err := repositories.BusRepository{DB: db}.Exists(ctx, busID)
	if err != nil {
		return models.RouteStop{}, storeErr("check bus", err)
	}
	if !exists {
		return models.RouteStop{}, domain.NotFoundError{Resource: "bus", Err: domain.ErrBusNotFound}
	}

	id, err := repositories.RouteRepository{DB: db}.Insert(ctx, stop)
	if err != nil {
		return models.RouteStop{}, storeErr("insert route", err)
	}
	stop.ID = id
	return stop, nil
}

// cleanStop trims a stop and rejects empty names and unparsable times, so
// every stored time sorts chronologically.
func cleanStop(busID int64, r models.RouteStop) (models.RouteStop, error) {
	name := utils.NormalizeSpace(r.StopName)
	at := utils.TrimOrEmpty(r.StopTime)
	if name == "" {
		return r, domain.ValidationError{Field: "stop_name", Msg: "nama halte wajib diisi"}
	}
	if tooLong(name, maxStopNameLen) {
		return r, domain.ValidationError{Field: "stop_name", Msg: "nama halte terlalu panjang"}
	}
	if at == "" {
		return r, domain.ValidationError{Field: "stop_time", Msg: "jam wajib diisi"}
	}
	if !domain.ParseStopTime(at).Parsed {
		return r, domain.ValidationError{Field: "stop_time", Msg: "format jam harus HH:MM atau HH:MM:SS"}
	}
	return models.RouteStop{ID: r.ID, BusID: busID, StopName: name, StopTime: at}, nil
}
