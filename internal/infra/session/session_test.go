package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/noahops/console-bfa-go/internal/domain"
	"github.com/noahops/console-bfa-go/internal/infra/session"
)

func TestStatic_ReturnsConfiguredToken(t *testing.T) {
	src := session.NewStatic("svc-token")

	token, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token != "svc-token" {
		t.Errorf("expected svc-token, got %q", token)
	}
}

func TestStatic_EmptyTokenIsUnauthorized(t *testing.T) {
	src := session.NewStatic("")

	_, err := src.Token(context.Background())
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRenewable_Lifecycle(t *testing.T) {
	src := session.NewRenewable("")

	if _, err := src.Token(context.Background()); err == nil {
		t.Fatal("expected error before login")
	}

	src.Set("session-abc")
	token, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("expected no error after login, got %v", err)
	}
	if token != "session-abc" {
		t.Errorf("expected session-abc, got %q", token)
	}

	// Logout clears the session.
	src.Set("")
	var unauthorized *domain.ErrUnauthorized
	if _, err := src.Token(context.Background()); !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}
