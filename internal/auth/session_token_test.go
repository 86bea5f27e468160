package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := IssueSessionToken("secret", "sess_abc", "BouncerX", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ParseSessionToken("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sess_abc" || claims.Nickname != "BouncerX" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := IssueSessionToken("secret", "sess_abc", "BouncerX", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseSessionToken("other", tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := IssueSessionToken("secret", "sess_abc", "BouncerX", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseSessionToken("secret", tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
