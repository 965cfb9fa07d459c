package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, expiresAt, err := tm.Generate(42, []string{"administrator", "support"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute {
		t.Errorf("expiresAt too soon: %v remaining", remaining)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.AdminID != 42 {
		t.Errorf("AdminID = %d, want 42", claims.AdminID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "administrator" {
		t.Errorf("Roles = %v", claims.Roles)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)

	token, _, err := tm.Generate(1, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(testSecret, time.Hour).Generate(1, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewTokenManager("another-secret-another-secret-32", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	if _, err := tm.Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}
