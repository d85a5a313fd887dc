package slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"letsparkit/internal/parking"

	"github.com/gin-gonic/gin"
)

func TestListSlotsFilters(t *testing.T) {
	store := parking.NewSeeded()
	svc := NewService(store, nil, time.Minute)
	ctx := context.Background()

	all, err := svc.ListSlots(ctx, "loc-1", "", SlotFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 150 {
		t.Fatalf("slots = %d", len(all))
	}

	yes := true
	free, _ := svc.ListSlots(ctx, "loc-1", "", SlotFilter{Available: &yes})
	if len(free) != 42 {
		t.Errorf("available = %d, want 42", len(free))
	}

	ev, _ := svc.ListSlots(ctx, "loc-1", "", SlotFilter{Type: parking.SlotTypeEV})
	for _, s := range ev {
		if s.Type != parking.SlotTypeEV {
			t.Fatalf("slot %s type %s", s.ID, s.Type)
		}
	}

	if _, err := svc.ListSlots(ctx, "loc-x", "", SlotFilter{}); !errors.Is(err, parking.ErrLocationNotFound) {
		t.Errorf("unknown location err = %v", err)
	}
}

func TestHoldSlotRules(t *testing.T) {
	store := parking.NewSeeded()
	svc := NewService(store, NewMemoryHoldManager(), time.Minute)
	ctx := context.Background()

	if _, err := svc.HoldSlot(ctx, "slot-loc-2-10", "user-3"); !errors.Is(err, parking.ErrSlotUnavailable) {
		t.Errorf("booked slot err = %v", err)
	}
	if _, err := svc.HoldSlot(ctx, "slot-nowhere", "user-3"); !errors.Is(err, parking.ErrSlotNotFound) {
		t.Errorf("unknown slot err = %v", err)
	}

	if _, err := svc.HoldSlot(ctx, "slot-loc-1-2", "user-3"); err != nil {
		t.Fatal(err)
	}
	if err := svc.CheckBookable(ctx, "slot-loc-1-2", "user-4"); !errors.Is(err, ErrSlotHeld) {
		t.Errorf("other user bookable err = %v", err)
	}
	if err := svc.CheckBookable(ctx, "slot-loc-1-2", "user-3"); err != nil {
		t.Errorf("holder bookable err = %v", err)
	}

	mine, _ := svc.ListSlots(ctx, "loc-1", "user-3", SlotFilter{})
	if !mine[1].IsHeld || !mine[1].HeldByMe {
		t.Errorf("slot 2 = %+v", mine[1])
	}
	theirs, _ := svc.ListSlots(ctx, "loc-1", "user-4", SlotFilter{})
	if !theirs[1].IsHeld || theirs[1].HeldByMe {
		t.Errorf("slot 2 for other user = %+v", theirs[1])
	}

	svc.ConsumeHold(ctx, "slot-loc-1-2", "user-3")
	if err := svc.CheckBookable(ctx, "slot-loc-1-2", "user-4"); err != nil {
		t.Errorf("consumed hold still blocks: %v", err)
	}
}

func TestListSlotsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewController(NewService(parking.NewSeeded(), nil, time.Minute))
	r := gin.New()
	r.GET("/locations/:id/slots", ctrl.ListSlots)

	tests := []struct {
		query string
		code  int
		count float64
	}{
		{"?type=handicapped", http.StatusOK, 18},
		{"?available=false&type=ev", http.StatusOK, 16},
		{"?type=bus", http.StatusBadRequest, 0},
		{"?available=maybe", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locations/loc-3/slots"+tt.query, nil))
		if w.Code != tt.code {
			t.Errorf("%s status = %d", tt.query, w.Code)
			continue
		}
		if tt.code != http.StatusOK {
			continue
		}
		var body struct {
			Data struct {
				Count float64 `json:"count"`
			} `json:"data"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Data.Count != tt.count {
			t.Errorf("%s count = %v, want %v", tt.query, body.Data.Count, tt.count)
		}
	}
}
