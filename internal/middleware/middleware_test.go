package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"skyward-va/concourse/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithClaims(claims *auth.UserClaims) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	if claims != nil {
		req = req.WithContext(auth.SetUserClaims(req.Context(), claims))
	}
	return req
}

func TestIsStaffMiddleware(t *testing.T) {
	handler := IsStaffMiddleware()(okHandler())

	cases := []struct {
		name   string
		claims *auth.UserClaims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"plain user", &auth.UserClaims{UserID: "u1"}, http.StatusUnauthorized},
		{"staff", &auth.UserClaims{UserID: "u1", IsStaff: true}, http.StatusOK},
		{"admin", &auth.UserClaims{UserID: "u1", IsAdmin: true}, http.StatusOK},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithClaims(tc.claims))
		if rr.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rr.Code, tc.want)
		}
	}
}

func TestIsAdminMiddleware(t *testing.T) {
	handler := IsAdminMiddleware()(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithClaims(&auth.UserClaims{UserID: "u1", IsStaff: true}))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("staff passed admin gate: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithClaims(&auth.UserClaims{UserID: "u1", IsAdmin: true}))
	if rr.Code != http.StatusOK {
		t.Errorf("admin rejected: %d", rr.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	// Fresh IP so this test owns its limiter bucket.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.77:51000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d within burst: status = %d, want 200", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.77:51000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("request past burst: status = %d, want 429", rr.Code)
	}
}

func TestRateLimitMiddleware_WhitelistsBot(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "127.0.0.1:51000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("whitelisted request %d throttled: status = %d", i+1, rr.Code)
		}
	}
}

func TestIsBotMiddleware(t *testing.T) {
	handler := IsBotMiddleware()(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithClaims(&auth.UserClaims{UserID: "u1", IsAdmin: true}))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("admin passed bot gate: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithClaims(&auth.UserClaims{UserID: "bot", IsBot: true}))
	if rr.Code != http.StatusOK {
		t.Errorf("bot rejected: %d", rr.Code)
	}
}
