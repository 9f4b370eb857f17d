package authsession

import (
	"context"
	"testing"

	"github.com/shashidharbabu/aerive-client/internal/storage"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
)

func newManager(t *testing.T, durable storage.Store) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), durable, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestSignInPersistsAcrossRestart(t *testing.T) {
	t.Parallel()

	durable := storage.NewMemoryStore()
	first := newManager(t, durable)
	ctx := context.Background()

	err := first.SignIn(ctx, Session{UserID: "U1", UserType: enums.UserTypeTraveler, Token: "tok-1"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if first.Token() != "tok-1" {
		t.Fatalf("token = %q", first.Token())
	}

	// A fresh manager over the same store hydrates the session.
	second := newManager(t, durable)
	current := second.Current()
	if current == nil || current.UserID != "U1" || current.UserType != enums.UserTypeTraveler {
		t.Fatalf("hydrated session = %+v", current)
	}
	if second.Token() != "tok-1" {
		t.Fatalf("hydrated token = %q", second.Token())
	}
}

func TestSignOutClearsDurableKeys(t *testing.T) {
	t.Parallel()

	durable := storage.NewMemoryStore()
	m := newManager(t, durable)
	ctx := context.Background()

	if err := m.SignIn(ctx, Session{UserID: "U1", UserType: enums.UserTypeTraveler, Token: "tok-1"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := m.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if m.Current() != nil {
		t.Fatal("session still present after sign out")
	}
	if m.Token() != "" {
		t.Fatal("token still present after sign out")
	}
	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyUserType} {
		if _, ok, _ := durable.Get(ctx, key); ok {
			t.Fatalf("key %q still persisted", key)
		}
	}
}

func TestSignInRejectsIncompleteSession(t *testing.T) {
	t.Parallel()

	m := newManager(t, storage.NewMemoryStore())
	ctx := context.Background()

	if err := m.SignIn(ctx, Session{Token: "tok-1", UserType: enums.UserTypeTraveler}); err == nil {
		t.Fatal("missing user id must be rejected")
	}
	if err := m.SignIn(ctx, Session{UserID: "U1", UserType: enums.UserTypeTraveler}); err == nil {
		t.Fatal("missing token must be rejected")
	}
	if err := m.SignIn(ctx, Session{UserID: "U1", UserType: "wizard", Token: "tok-1"}); err == nil {
		t.Fatal("unknown user type must be rejected")
	}
}

func TestHydrationDiscardsIncompleteState(t *testing.T) {
	t.Parallel()

	durable := storage.NewMemoryStore()
	ctx := context.Background()

	// A token with no user record is a half-written session.
	if err := durable.Set(ctx, storage.KeyToken, "tok-orphan"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := newManager(t, durable)
	if m.Current() != nil {
		t.Fatal("half-written session must be discarded")
	}
	if m.Token() != "" {
		t.Fatal("discarded session must not supply a token")
	}
}

func TestUndecodableTokenStillSignsIn(t *testing.T) {
	t.Parallel()

	m := newManager(t, storage.NewMemoryStore())

	// The server owns token validation; an opaque blob is accepted locally.
	err := m.SignIn(context.Background(), Session{UserID: "U1", UserType: enums.UserTypeHost, Token: "not-a-jwt"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if m.Token() != "not-a-jwt" {
		t.Fatalf("token = %q", m.Token())
	}
}
