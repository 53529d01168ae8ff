package services

import (
	"context"
	"testing"

	"perfume-store/models"
	"perfume-store/repositories"
)

func TestLoginThenCurrent(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(repositories.NewMemorySessionRepository())

	err := sessions.Login(ctx, "s1", "jwt-token", models.User{ID: "u1", IsAdmin: true})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	current := sessions.Current(ctx, "s1")
	if current == nil {
		t.Fatal("expected a logged-in session")
	}
	if current.Token != "jwt-token" || current.UserID != "u1" || !current.IsAdmin {
		t.Fatalf("unexpected session %+v", current)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemorySessionRepository()
	sessions := NewSessionService(storage)

	if err := sessions.Login(ctx, "s1", "jwt-token", models.User{ID: "u1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := sessions.Logout(ctx, "s1"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if sessions.Current(ctx, "s1") != nil {
		t.Fatal("expected logged out after logout")
	}

	values, err := storage.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("logout must clear every key, found %v", values)
	}
}

func TestPartialStateWithoutTokenIsLoggedOut(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemorySessionRepository()
	sessions := NewSessionService(storage)

	// A stale record holding everything but the token must read as logged
	// out regardless of the other keys.
	err := storage.Save(ctx, "s1", map[string]string{
		repositories.SessionKeyUserID:  "u1",
		repositories.SessionKeyIsAdmin: "true",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if sessions.Current(ctx, "s1") != nil {
		t.Fatal("missing token must count as logged out")
	}
}

func TestUnknownSessionIsLoggedOut(t *testing.T) {
	sessions := NewSessionService(repositories.NewMemorySessionRepository())
	if sessions.Current(context.Background(), "never-seen") != nil {
		t.Fatal("unknown session must count as logged out")
	}
}
