package utils

import (
	"testing"
	"time"

	"consultorio/config"

	"github.com/golang-jwt/jwt"
)

func TestGenerateAndValidateToken(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"

	token, err := GenerateToken("prof-1", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := ValidateToken(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("ValidateToken: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected MapClaims")
	}
	if claims["sub"] != "prof-1" {
		t.Fatalf("sub = %v, want prof-1", claims["sub"])
	}
	if claims["email"] != "ana@example.com" {
		t.Fatalf("email = %v", claims["email"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "secret-a"
	token, err := GenerateToken("prof-1", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	config.AppConfig.JWTSecret = "secret-b"
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"
	token, err := GenerateToken("prof-1", "ana@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("token-a")
	h2 := HashToken("token-a")
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %s vs %s", h1, h2)
	}
	if h1 == HashToken("token-b") {
		t.Fatal("different tokens must hash differently")
	}
	if len(h1) != 64 {
		t.Fatalf("expected hex SHA-256, got length %d", len(h1))
	}
}
