package jwt

import (
	"testing"
)

var testSecret = []byte("this-is-a-very-long-secret-key-with-more-than-32-bytes")

func TestGenerateAndValidateJWT(t *testing.T) {
	raw, err := GenerateJWT(JWTParams{UserID: "42"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	token, err := ValidateJWT(raw, DefaultKID, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject() error = %v", err)
	}
	if sub != "42" {
		t.Errorf("subject = %q, want %q", sub, "42")
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	raw, err := GenerateJWT(JWTParams{UserID: "42"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(raw, DefaultKID, []byte("another-secret-key-that-is-long-enough!!")); err == nil {
		t.Error("ValidateJWT() = nil error for wrong secret")
	}
}

func TestValidateJWTWrongKID(t *testing.T) {
	raw, err := GenerateJWT(JWTParams{UserID: "42"}, testSecret, "2")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(raw, DefaultKID, testSecret); err == nil {
		t.Error("ValidateJWT() = nil error for mismatched kid")
	}
}
