package server_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/middleware"
)

func TestUserSelfUpdate(t *testing.T) {
	api := newTestAPI(t, middleware.RateLimitConfig{})
	token := api.login(t, "alice", "pass123")

	// Update own email and password.
	rr := api.do(t, http.MethodPut, "/api/users/me", token, map[string]string{
		"email": "Alice.New@Example.com", "password": "fresh42",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update me: got %d: %s", rr.Code, rr.Body.String())
	}
	var updated struct {
		Email string `json:"email"`
	}
	decode(t, rr, &updated)
	if updated.Email != "alice.new@example.com" {
		t.Errorf("email = %q, want lowercased", updated.Email)
	}

	// Old password no longer works, new one does.
	rrOld := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "pass123",
	})
	if rrOld.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: %d", rrOld.Code)
	}
	api.login(t, "alice", "fresh42")

	// Self-service role escalation is rejected.
	rr = api.do(t, http.MethodPut, "/api/users/me", token, map[string]string{
		"role": auth.RoleAdmin,
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("self role change: got %d, want 403", rr.Code)
	}
}

func TestUserAccessByID(t *testing.T) {
	api := newTestAPI(t, middleware.RateLimitConfig{})
	aliceToken := api.login(t, "alice", "pass123")
	adminToken := api.login(t, "root", "admin123")

	// Find alice's id through the admin listing.
	rr := api.do(t, http.MethodGet, "/api/users", adminToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list users: %d", rr.Code)
	}
	var all []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	decode(t, rr, &all)
	var aliceID, rootID uint
	for _, u := range all {
		switch u.Username {
		case "alice":
			aliceID = u.ID
		case "root":
			rootID = u.ID
		}
	}
	if aliceID == 0 || rootID == 0 {
		t.Fatalf("seeded users missing from listing: %+v", all)
	}

	// Owner and admin may read; a foreign user may not.
	if rr := api.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), aliceToken, nil); rr.Code != http.StatusOK {
		t.Errorf("owner read: %d", rr.Code)
	}
	if rr := api.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), adminToken, nil); rr.Code != http.StatusOK {
		t.Errorf("admin read: %d", rr.Code)
	}
	if rr := api.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", rootID), aliceToken, nil); rr.Code != http.StatusForbidden {
		t.Errorf("foreign read: got %d, want 403", rr.Code)
	}

	// Only an admin may promote.
	rr = api.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", aliceID), adminToken, map[string]string{
		"role": auth.RoleAdmin,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("admin promote: got %d: %s", rr.Code, rr.Body.String())
	}
	var promoted struct {
		Role string `json:"role"`
	}
	decode(t, rr, &promoted)
	if promoted.Role != auth.RoleAdmin {
		t.Errorf("role = %q after promotion", promoted.Role)
	}

	// Admin-created accounts and deletion.
	rr = api.do(t, http.MethodPost, "/api/users", adminToken, map[string]string{
		"username": "temp_user", "email": "temp@example.com", "password": "temp99", "role": auth.RoleUser,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("admin create user: got %d: %s", rr.Code, rr.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, rr, &created)

	if rr := api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), aliceToken, nil); rr.Code == http.StatusOK {
		t.Error("non-admin delete succeeded")
	}
	if rr := api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), adminToken, nil); rr.Code != http.StatusOK {
		t.Errorf("admin delete: got %d", rr.Code)
	}
}
