package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := GenerateJWT(secret, "user-1", "sess-1", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseJWT(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.SessionID != "sess-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ParseJWT([]byte("other"), tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWTRejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, _ := GenerateJWT(secret, "user-1", "sess-1", -time.Minute)
	if _, err := ParseJWT(secret, expired); err == nil {
		t.Error("expected error for expired token")
	}

	noSession, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	if _, err := ParseJWT(secret, noSession); err == nil {
		t.Error("expected error for token without session id")
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{SessionID: "s"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := ParseJWT(secret, none); err == nil {
		t.Error("expected error for unsigned token")
	}
}
