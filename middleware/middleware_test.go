package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krishi/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateJWTRoundTrip(t *testing.T) {
	signed := signedToken(t, &Claims{
		UserID: "u42",
		Role:   "farmer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT(signed)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "u42" || claims.Role != "farmer" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateJWTRejectsBadInput(t *testing.T) {
	expired := signedToken(t, &Claims{
		UserID: "u42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	for _, tokenString := range []string{"", "not-a-jwt", expired} {
		if _, err := ValidateJWT(tokenString); err == nil {
			t.Errorf("ValidateJWT(%q) accepted an invalid token", tokenString)
		}
	}
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	signed := signedToken(t, &Claims{
		UserID: "u42",
		Role:   "store",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var gotUser, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUser != "u42" || gotRole != "store" {
		t.Fatalf("context user=%q role=%q", gotUser, gotRole)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	allowed := false
	handler := RequireRoles("admin")(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		allowed = true
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if allowed || w.Code != http.StatusForbidden {
		t.Fatalf("request without role claim must be forbidden, status = %d", w.Code)
	}

	r2 := r.WithContext(context.WithValue(r.Context(), globals.RoleKey, "admin"))
	w2 := httptest.NewRecorder()
	handler(w2, r2, nil)
	if !allowed {
		t.Fatal("admin role must pass the gate")
	}
}
