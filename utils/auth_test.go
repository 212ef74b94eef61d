package utils

import (
	"testing"
	"time"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		session Session
		want    bool
	}{
		{"valid", Session{Authenticated: true, ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", Session{Authenticated: true, ExpiresAt: now.Add(-time.Minute)}, true},
		{"expires exactly now", Session{Authenticated: true, ExpiresAt: now}, true},
		{"unauthenticated", Session{Authenticated: false, ExpiresAt: now.Add(time.Hour)}, true},
	}
	for _, tc := range cases {
		if got := tc.session.Expired(now); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTokenSessionRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "2")

	token, err := GenerateToken("user-123")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	session, err := SessionFromToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !session.Authenticated || session.UserID != "user-123" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Expired(time.Now()) {
		t.Fatal("fresh session should not be expired")
	}
	if !session.Expired(time.Now().Add(3 * time.Hour)) {
		t.Fatal("session should expire after its window")
	}
}

func TestSessionFromTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := SessionFromToken("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("wrong password should not verify")
	}
}
