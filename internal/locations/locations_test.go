package locations

import (
	"context"
	"net/http"
	"testing"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/testutil"
)

func TestListFilters(t *testing.T) {
	svc := NewService(parking.NewSeeded())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"loc-1", "loc-2", "loc-3", "loc-4"}},
		{"city", Filter{City: "new delhi"}, []string{"loc-1", "loc-4"}},
		{"name", Filter{Search: "cyber"}, []string{"loc-2"}},
		{"address", Filter{Search: "district centre"}, []string{"loc-4"}},
		{"city and search", Filter{City: "New Delhi", Search: "noida"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.List(ctx, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %d locations, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestLocationHandlers(t *testing.T) {
	engine := testutil.Engine()
	SetupLocationRoutes(engine.Group("/api/v1"), NewController(NewService(parking.NewSeeded())), testutil.Authenticator())
	adminToken := testutil.AccessToken(t, "admin-1", "Admin User", "admin")
	userToken := testutil.AccessToken(t, "user-1", "Rahul Sharma", "user")

	w, env := testutil.Do(t, engine, http.MethodGet, "/api/v1/locations?city=Gurugram", "", nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["count"].(float64) != 1 {
		t.Errorf("list = %d %v", w.Code, env.Data)
	}

	w, env = testutil.Do(t, engine, http.MethodGet, "/api/v1/locations/loc-1", "", nil)
	if w.Code != http.StatusOK || testutil.DataMap(t, env)["availableSlots"].(float64) != 42 {
		t.Errorf("get = %d %v", w.Code, env.Data)
	}
	w, _ = testutil.Do(t, engine, http.MethodGet, "/api/v1/locations/loc-9", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown location = %d, want 404", w.Code)
	}

	update := map[string]interface{}{"pricePerHour": 95, "amenities": []string{" CCTV ", ""}}
	w, _ = testutil.Do(t, engine, http.MethodPut, "/api/v1/admin/locations/loc-1", userToken, update)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin update = %d, want 403", w.Code)
	}

	w, env = testutil.Do(t, engine, http.MethodPut, "/api/v1/admin/locations/loc-1", adminToken, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d body = %s", w.Code, w.Body.String())
	}
	data := testutil.DataMap(t, env)
	if data["pricePerHour"].(float64) != 95 || data["name"] != "Connaught Place Parking" {
		t.Errorf("updated = %v", data)
	}
	if amenities := data["amenities"].([]interface{}); len(amenities) != 1 || amenities[0] != "CCTV" {
		t.Errorf("amenities = %v", amenities)
	}

	w, _ = testutil.Do(t, engine, http.MethodPut, "/api/v1/admin/locations/loc-1", adminToken, map[string]string{"image": "not a url"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad image = %d, want 400", w.Code)
	}
}
