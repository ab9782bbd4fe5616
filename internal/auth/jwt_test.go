package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/waveup-app/waveup-api/internal/config"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTestIssuer(t *testing.T, clk *fixedClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour}, clk)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	clk := &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clk)

	token, errIssue := issuer.Issue("creator-1", false)
	if errIssue != nil {
		t.Fatalf("issue: %v", errIssue)
	}

	claims, errVerify := issuer.Verify(token)
	if errVerify != nil {
		t.Fatalf("verify: %v", errVerify)
	}
	if claims.Subject != "creator-1" || claims.Admin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenIssuer_AdminFlag(t *testing.T) {
	clk := &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clk)

	token, _ := issuer.Issue("7", true)
	claims, errVerify := issuer.Verify(token)
	if errVerify != nil {
		t.Fatalf("verify: %v", errVerify)
	}
	if !claims.Admin {
		t.Fatal("expected admin claim")
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	clk := &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clk)

	token, _ := issuer.Issue("creator-1", false)

	clk.now = clk.now.Add(2 * time.Hour)
	if _, errVerify := issuer.Verify(token); !errors.Is(errVerify, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errVerify)
	}
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	clk := &fixedClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clk)

	other, err := NewTokenIssuer(config.JWTConfig{Secret: "other-secret", Expiry: time.Hour}, clk)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, _ := other.Issue("creator-1", false)
	if _, errVerify := issuer.Verify(token); !errors.Is(errVerify, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errVerify)
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(config.JWTConfig{Expiry: time.Hour}, nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, errHash := HashPassword("hunter2")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if !CheckPassword(hashed, "hunter2") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hashed, "wrong") {
		t.Fatal("expected mismatch")
	}
}
