package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := intconfig.OpenDB(intconfig.DriverSQLite, "file:"+name+"?mode=memory&cache=shared&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := intdb.EnsureSchema(context.Background(), db, intconfig.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	prevDB, prevDriver := intconfig.DB, intconfig.DBDriver
	intconfig.DB, intconfig.DBDriver = db, intconfig.DriverSQLite
	t.Cleanup(func() {
		intconfig.DB, intconfig.DBDriver = prevDB, prevDriver
		_ = db.Close()
	})

	seed := []string{
		`INSERT INTO buses (bus_id, bus_number, total_seats) VALUES (1, 'B-01', 10)`,
		`INSERT INTO buses (bus_id, bus_number, total_seats) VALUES (2, 'B-02', 4)`,
		`INSERT INTO seats (bus_id, available_seats) VALUES (1, 1)`,
		`INSERT INTO routes (bus_id, stop_name, stop_time) VALUES (1, 'Hostel', '09:00')`,
		`INSERT INTO routes (bus_id, stop_name, stop_time) VALUES (1, 'Gate', '08:15')`,
	}
	for _, q := range seed {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("seed %q: %v", q, err)
		}
	}

	return NewRouter(intconfig.Env{
		JWTSecret:          "test-secret",
		SessionTTL:         time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	})
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/db-check", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("db-check status %d body %s", w.Code, w.Body.String())
	}
}

func TestBusSummaryAndRoute(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/buses/summary", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status %d: %s", w.Code, w.Body.String())
	}
	var rows []struct {
		BusID        int64  `json:"bus_id"`
		RouteLabel   string `json:"route_label"`
		Availability struct {
			Status string `json:"status"`
		} `json:"availability"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 buses, got %d", len(rows))
	}
	if rows[0].RouteLabel != "Gate → Hostel" {
		t.Fatalf("route label got %q", rows[0].RouteLabel)
	}
	if rows[1].RouteLabel != "No route info" {
		t.Fatalf("bus without stops got %q", rows[1].RouteLabel)
	}

	w = doJSON(t, r, http.MethodGet, "/api/buses/99/route", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown bus route: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/buses/abc/route", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{"bus_id": 1, "user_name": "Rina"})
	if w.Code != http.StatusCreated {
		t.Fatalf("first booking status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Booking struct {
			OccupancyID    int64 `json:"occupancy_id"`
			RemainingSeats int   `json:"remaining_seats"`
		} `json:"booking"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Booking.RemainingSeats != 0 {
		t.Fatalf("remaining got %d", resp.Booking.RemainingSeats)
	}

	w = doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{"bus_id": 1, "user_name": "Budi"})
	if w.Code != http.StatusConflict {
		t.Fatalf("exhausted bus: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{"bus_id": 42, "user_name": "Budi"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown bus: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{"bus_id": 1, "user_name": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/1/receipt", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("receipt status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("receipt is not a pdf")
	}
}

func TestIntent(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/intents", "", gin.H{"student_id": "S-1", "bus_id": 2})
	if w.Code != http.StatusCreated {
		t.Fatalf("intent status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/intents", "", gin.H{"student_id": "", "bus_id": 2})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty student: status %d", w.Code)
	}
}

func TestAdminFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/dashboard", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("dashboard without session: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"username": "ops", "password": "pw1", "confirm_password": "pw2"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mismatched confirmation: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"username": "ops", "password": "pw1", "confirm_password": "pw1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Fatalf("register response leaks the hash")
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"username": "rider", "password": "x", "confirm_password": "x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous register after first admin: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ops", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ops", "password": "pw1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login token missing: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", login.Token, gin.H{"username": "ops", "password": "x", "confirm_password": "x"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate username: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", login.Token, gin.H{"username": "ops2", "password": "pw2", "confirm_password": "pw2"})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin-created register status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", login.Token, gin.H{"username": "ops3", "password": strings.Repeat("x", 80), "confirm_password": strings.Repeat("x", 80)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overlong password: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/dashboard", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/admin/buses/2", login.Token, gin.H{"bus_number": "B-02X", "total_seats": 6, "available_seats": 6})
	if w.Code != http.StatusOK {
		t.Fatalf("update bus status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPut, "/api/admin/buses/2", login.Token, gin.H{"bus_number": "B-02X", "total_seats": 6, "available_seats": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("available above total: status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/admin/buses/2/routes", login.Token, gin.H{"stop_name": "Library", "stop_time": "07:30"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add route status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/admin/buses/2/routes", login.Token, gin.H{"stop_name": "Library", "stop_time": "soon"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed time: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/admin/dashboard", login.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("dashboard after logout: status %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	w := doJSON(t, r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "shuttle_http_request_duration_seconds") {
		t.Fatalf("request histogram not exported")
	}
}
