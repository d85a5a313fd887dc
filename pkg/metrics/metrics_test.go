package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"letsparkit/internal/parking"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEventCounters(t *testing.T) {
	m := New()
	store := parking.NewSeeded()
	store.Subscribe(m)
	ctx := context.Background()

	if _, err := store.CancelBooking(ctx, "booking-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AttachAdminResponse(ctx, "feedback-1", "Thanks"); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(m.events.WithLabelValues(string(parking.EventBookingCancelled))); got != 1 {
		t.Errorf("booking.cancelled = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.events.WithLabelValues(string(parking.EventFeedbackResponded))); got != 1 {
		t.Errorf("feedback.responded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.bookings.WithLabelValues("loc-2", string(parking.StatusCancelled))); got != 1 {
		t.Errorf("loc-2 cancelled = %v, want 1", got)
	}

	m.Publish(ctx, parking.Event{
		Type:    parking.EventPaymentRecorded,
		Payment: &parking.Payment{Amount: 160, Status: parking.PaymentStatusPaid},
	})
	m.Publish(ctx, parking.Event{
		Type:    parking.EventPaymentRecorded,
		Payment: &parking.Payment{Amount: 99, Status: parking.PaymentStatusFailed},
	})
	if got := testutil.ToFloat64(m.revenue); got != 160 {
		t.Errorf("revenue = %v, want 160", got)
	}
}

func TestAvailabilityCollector(t *testing.T) {
	m := New()
	store := parking.NewSeeded()
	if err := m.RegisterAvailability(store); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CollectAndCount(m.Registry, "letsparkit_location_available_slots"); n != 4 {
		t.Errorf("available_slots series = %d, want 4", n)
	}

	if _, err := store.CancelBooking(context.Background(), "booking-2"); err != nil {
		t.Fatal(err)
	}
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := store.Location("loc-2")
	for _, mf := range families {
		if mf.GetName() != "letsparkit_location_available_slots" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if metric.GetLabel()[0].GetValue() == "loc-2" && int(metric.GetGauge().GetValue()) != want.AvailableSlots {
				t.Errorf("loc-2 available = %v, want %d", metric.GetGauge().GetValue(), want.AvailableSlots)
			}
		}
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/api/v1/locations/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", m.Handler())

	for _, path := range []string{"/api/v1/locations/loc-1", "/api/v1/locations/loc-2", "/nope"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if n := testutil.CollectAndCount(m.httpRequests); n != 2 {
		t.Errorf("histogram series = %d, want 2 (route and unmatched)", n)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `letsparkit_http_request_duration_seconds_count{method="GET",route="/api/v1/locations/:id",status="200"} 2`) {
		t.Errorf("/metrics missing route histogram:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("/metrics missing runtime collectors")
	}
}
