package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type countStub map[string]int

func (c countStub) BookingCountByUser(userID string) int { return c[userID] }

func TestListUsersSearchAndCounts(t *testing.T) {
	svc := NewService(newTestRepository(t), countStub{"user-1": 2})
	ctx := context.Background()

	all, err := svc.ListUsers(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	want := UserCounts{Total: 5, Admins: 1, Users: 4, WithVehicles: 4}
	if all.Counts != want {
		t.Errorf("counts = %+v, want %+v", all.Counts, want)
	}
	if len(all.Users) != 5 {
		t.Errorf("users = %d", len(all.Users))
	}

	tests := map[string][]string{
		"rahul":       {"user-1"},
		"hr26":        {"user-2"},
		"7776665554":  {"user-3"},
		"EXAMPLE.COM": {"user-1", "user-2", "user-3", "user-4"},
		"zzz":         {},
	}
	for term, ids := range tests {
		got, _ := svc.ListUsers(ctx, term)
		if len(got.Users) != len(ids) {
			t.Errorf("search %q = %d users, want %d", term, len(got.Users), len(ids))
			continue
		}
		for i, id := range ids {
			if got.Users[i].ID != id {
				t.Errorf("search %q [%d] = %s, want %s", term, i, got.Users[i].ID, id)
			}
		}
		if got.Counts != want {
			t.Errorf("counts must not depend on search")
		}
	}

	rahul, _ := svc.ListUsers(ctx, "rahul")
	if rahul.Users[0].BookingCount != 2 {
		t.Errorf("bookingCount = %d", rahul.Users[0].BookingCount)
	}
}

func TestGetUserHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewController(NewService(newTestRepository(t), nil))
	r := gin.New()
	r.GET("/admin/users/:id", ctrl.GetUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users/user-4", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body response.StandardApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	data := body.Data.(map[string]interface{})
	if data["email"] != "sneha@example.com" {
		t.Errorf("data = %v", data)
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Error("password hash must not be serialised")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d", w.Code)
	}
}
