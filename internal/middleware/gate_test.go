package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corpsite/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := service.Claims{
		AdminID: uuid.New(),
		Email:   "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func gateHandler() (http.Handler, *bool) {
	reached := false
	auth := service.NewAuthService(nil, testSecret, time.Hour)
	handler := AdminGate(auth, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &reached
}

func TestAdminGateRedirectsWithoutCookie(t *testing.T) {
	handler, reached := gateHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if *reached {
		t.Error("protected handler was reached")
	}
}

func TestAdminGateClearsRejectedCookie(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"expired", signTestToken(t, testSecret, -time.Hour)},
		{"wrong secret", signTestToken(t, "other-secret", time.Hour)},
		{"garbage", "not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, reached := gateHandler()

			req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.token})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusFound {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
			}
			if *reached {
				t.Error("protected handler was reached")
			}

			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == SessionCookieName && c.MaxAge < 0 {
					cleared = true
				}
			}
			if !cleared {
				t.Error("session cookie was not cleared")
			}
		})
	}
}

func TestAdminGatePassesValidCookie(t *testing.T) {
	handler, reached := gateHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signTestToken(t, testSecret, time.Hour)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !*reached {
		t.Error("protected handler was not reached")
	}
}
