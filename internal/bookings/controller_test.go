package bookings

import (
	"net/http"
	"testing"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/testutil"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *parking.Store) {
	t.Helper()
	f := newFixture(t)
	engine := testutil.Engine()
	controller := NewController(f.svc, f.store, NewTickets(testutil.Config().Booking.TicketSecret))
	SetupBookingRoutes(engine.Group("/api/v1"), controller, testutil.Authenticator())
	return engine, f.store
}

func TestCreateAndFetchBookingHandlers(t *testing.T) {
	engine, store := newTestRouter(t)
	userToken := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")
	otherToken := testutil.AccessToken(t, "user-2", "Priya Singh", "user")

	body := map[string]interface{}{
		"locationId": "loc-1",
		"slotId":     "slot-loc-1-1",
		"startTime":  time.Date(2024, time.March, 1, 10, 0, 0, 0, parking.IST),
		"duration":   2,
	}
	w, env := testutil.Do(t, engine, http.MethodPost, "/api/v1/bookings", userToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	data := testutil.DataMap(t, env)
	id := data["id"].(string)
	if data["amount"].(float64) != 160 || data["status"] != "pending" {
		t.Errorf("created booking = %v", data)
	}
	if slot, _ := store.Slot("slot-loc-1-1"); slot.IsAvailable {
		t.Error("slot should be unavailable after booking")
	}

	w, _ = testutil.Do(t, engine, http.MethodPost, "/api/v1/bookings", otherToken, body)
	if w.Code != http.StatusConflict {
		t.Errorf("double booking status = %d, want 409", w.Code)
	}

	w, _ = testutil.Do(t, engine, http.MethodGet, "/api/v1/bookings/"+id, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign booking status = %d, want 403", w.Code)
	}

	w, env = testutil.Do(t, engine, http.MethodGet, "/api/v1/bookings?limit=1", userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := testutil.DataMap(t, env)
	if list["total"].(float64) != 3 || list["count"].(float64) != 1 {
		t.Errorf("list paging = %v", list)
	}

	w, env = testutil.Do(t, engine, http.MethodPost, "/api/v1/bookings/"+id+"/cancel", userToken, nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["status"] != "cancelled" {
		t.Errorf("cancel = %d %v", w.Code, env.Data)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing slot", map[string]interface{}{"locationId": "loc-1", "startTime": time.Now(), "duration": 1}},
		{"duration too long", map[string]interface{}{"locationId": "loc-1", "slotId": "slot-loc-1-1", "startTime": time.Now(), "duration": 25}},
		{"bad start time", map[string]interface{}{"locationId": "loc-1", "slotId": "slot-loc-1-1", "startTime": "tomorrow", "duration": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := testutil.Do(t, engine, http.MethodPost, "/api/v1/bookings", token, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}

	w, _ := testutil.Do(t, engine, http.MethodPost, "/api/v1/bookings", "", tests[0].body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
}

func TestAdminBookingHandlers(t *testing.T) {
	engine, _ := newTestRouter(t)
	adminToken := testutil.AccessToken(t, "admin-1", "Admin User", "admin")
	userToken := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")

	w, _ := testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/bookings", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", w.Code)
	}

	w, env := testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/bookings?status=confirmed&search=priya", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", w.Code)
	}
	if got := testutil.DataMap(t, env)["count"].(float64); got != 1 {
		t.Errorf("filtered count = %v, want 1", got)
	}

	w, _ = testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/bookings?status=parked", adminToken, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad status filter = %d, want 400", w.Code)
	}

	w, env = testutil.Do(t, engine, http.MethodPost, "/api/v1/admin/bookings/booking-2/complete", adminToken, nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["status"] != "completed" {
		t.Errorf("complete = %d %v", w.Code, env.Data)
	}
	w, _ = testutil.Do(t, engine, http.MethodPost, "/api/v1/admin/bookings/booking-2/complete", adminToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second complete = %d, want 409", w.Code)
	}
}

func TestTicketHandlers(t *testing.T) {
	engine, store := newTestRouter(t)
	userToken := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")
	adminToken := testutil.AccessToken(t, "admin-1", "Admin User", "admin")

	w, _ := testutil.Do(t, engine, http.MethodGet, "/api/v1/bookings/booking-2/ticket", userToken, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("ticket = %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	w, _ = testutil.Do(t, engine, http.MethodGet, "/api/v1/bookings/booking-2/qr", userToken, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr = %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	booking, _ := store.Booking("booking-2")
	payload := NewTickets(testutil.Config().Booking.TicketSecret).Payload(booking)
	w, env := testutil.Do(t, engine, http.MethodPost, "/api/v1/admin/tickets/verify", adminToken, VerifyTicketRequest{Payload: payload})
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["valid"] != true {
		t.Errorf("verify = %d %v", w.Code, env.Data)
	}

	w, env = testutil.Do(t, engine, http.MethodPost, "/api/v1/admin/tickets/verify", adminToken, VerifyTicketRequest{Payload: payload + "x"})
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["valid"] != false {
		t.Errorf("tampered verify = %d %v", w.Code, env.Data)
	}
}
