package payments

import (
	"bytes"
	"net/http"
	"testing"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/testutil"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *parking.Store) {
	t.Helper()
	store := parking.NewSeeded()
	engine := testutil.Engine()
	SetupPaymentRoutes(engine.Group("/api/v1"), NewController(NewService(store)), testutil.Authenticator())
	return engine, store
}

func TestPayHandler(t *testing.T) {
	engine, store := newTestRouter(t)
	booking := newPendingBooking(t, store, "user-1")
	token := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")

	w, _ := testutil.Do(t, engine, http.MethodPost, "/api/v1/payments", token, map[string]string{"bookingId": booking.ID, "paymentMethod": "cash"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid method status = %d, want 400", w.Code)
	}

	w, env := testutil.Do(t, engine, http.MethodPost, "/api/v1/payments", token, PayRequest{BookingID: booking.ID, PaymentMethod: "wallet"})
	if w.Code != http.StatusCreated {
		t.Fatalf("pay status = %d body = %s", w.Code, w.Body.String())
	}
	if testutil.DataMap(t, env)["amount"].(float64) != 160 {
		t.Errorf("payment = %v", env.Data)
	}

	w, _ = testutil.Do(t, engine, http.MethodPost, "/api/v1/payments", token, PayRequest{BookingID: booking.ID, PaymentMethod: "wallet"})
	if w.Code != http.StatusConflict {
		t.Errorf("repeat pay status = %d, want 409", w.Code)
	}

	w, env = testutil.Do(t, engine, http.MethodGet, "/api/v1/payments", token, nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["total"].(float64) != 3 {
		t.Errorf("my payments = %d %v", w.Code, env.Data)
	}
}

func TestAdminPaymentHandlers(t *testing.T) {
	engine, _ := newTestRouter(t)
	adminToken := testutil.AccessToken(t, "admin-1", "Admin User", "admin")
	userToken := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")

	w, _ := testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/payments/stats", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin stats = %d, want 403", w.Code)
	}

	w, env := testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/payments/stats", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	stats := testutil.DataMap(t, env)
	if stats["totalRevenue"].(float64) != 620 || stats["successRate"].(float64) != 100 {
		t.Errorf("stats = %v", stats)
	}

	w, env = testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/payments?search=txn-12345", adminToken, nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["count"].(float64) != 1 {
		t.Errorf("search = %d %v", w.Code, env.Data)
	}

	w, _ = testutil.Do(t, engine, http.MethodGet, "/api/v1/admin/payments/report", adminToken, nil)
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("report = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
}
