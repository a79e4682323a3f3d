package auth

import (
	"campaign/internal/entity"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.AdminUser{ID: 42, Username: "editor", Email: "editor@example.com"}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Username != user.Username {
		t.Fatalf("expected username %s, got %s", user.Username, claims.Username)
	}
	if claims.Email != user.Email {
		t.Fatalf("expected email %s, got %s", user.Email, claims.Email)
	}
}

func TestTokenLivesTwentyFourHours(t *testing.T) {
	mgr, err := NewManager("test-secret", "", 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	token, _, err := mgr.GenerateToken(&entity.AdminUser{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	lifetime := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if lifetime != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %s", lifetime)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	issuer, _ := NewManager("secret-a", "", time.Hour)
	verifier, _ := NewManager("secret-b", "", time.Hour)

	token, _, err := issuer.GenerateToken(&entity.AdminUser{ID: 7, Username: "admin"})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID:   3,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(mgr.secret)
	if err != nil {
		t.Fatalf("unexpected error signing token: %v", err)
	}
	if _, err := mgr.ParseToken(signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", time.Hour)
	claims := Claims{
		UserID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(mgr.secret)
	if err != nil {
		t.Fatalf("unexpected error signing token: %v", err)
	}
	if _, err := mgr.ParseToken(signed); err == nil {
		t.Fatal("expected HS512 token to be rejected")
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("unexpected error building unsigned token: %v", err)
	}
	if _, err := mgr.ParseToken(unsigned); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestParseTokenRejectsTokenIssuedLongAgo(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", 24*time.Hour)
	mgr.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, _, err := mgr.GenerateToken(&entity.AdminUser{ID: 5, Username: "admin"})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	mgr.now = time.Now

	_, err = mgr.ParseToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseTokenRejectsOtherIssuer(t *testing.T) {
	other, _ := NewManager("test-secret", "another-site", time.Hour)
	mgr, _ := NewManager("test-secret", "", time.Hour)

	token, _, err := other.GenerateToken(&entity.AdminUser{ID: 9, Username: "admin"})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := mgr.ParseToken(token); err == nil {
		t.Fatal("expected token from another issuer to be rejected")
	}
}

func TestGenerateTokenRequiresPersistedUser(t *testing.T) {
	mgr, _ := NewManager("test-secret", "", time.Hour)
	if _, _, err := mgr.GenerateToken(&entity.AdminUser{Username: "ghost"}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
