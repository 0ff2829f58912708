package auth

import (
	"testing"

	"krishi/globals"
	"krishi/middleware"
	"krishi/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAccessTokenCarriesClaims(t *testing.T) {
	user := &models.User{UserID: "u123", FullName: "Asha Pawar", Role: models.RoleFarmer}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.UserID != "u123" || claims.Role != models.RoleFarmer || claims.FullName != "Asha Pawar" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected expiry claim")
	}
}

func TestGenerateRefreshTokenIsUnique(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken: %v", err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Fatalf("two tokens must differ")
	}
}

func TestFindSession(t *testing.T) {
	sessions := []models.Session{
		{TokenID: "sess1", TokenHash: hashToken("tok-a")},
		{TokenID: "sess2", TokenHash: hashToken("tok-b")},
	}
	if got := findSession(sessions, hashToken("tok-b")); got == nil || got.TokenID != "sess2" {
		t.Fatalf("findSession = %+v", got)
	}
	if findSession(sessions, hashToken("tok-c")) != nil {
		t.Fatalf("unknown hash must not match")
	}
}

func TestHashTokenIsStable(t *testing.T) {
	if hashToken("abc") != hashToken("abc") {
		t.Fatalf("hash must be deterministic")
	}
	if hashToken("abc") == hashToken("abd") {
		t.Fatalf("distinct tokens must hash differently")
	}
	if len(hashToken("abc")) != 64 {
		t.Fatalf("sha256 hex digest must be 64 chars")
	}
}
