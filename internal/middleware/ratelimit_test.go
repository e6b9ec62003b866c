package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	// A rate this low never refills during the test.
	limiter := rate.NewLimiter(rate.Limit(0.0001), 2)
	h := RateLimit(limiter)(okHandler())

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, code := range want {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != code {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, code)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	if NewLimiter(0, 10) != nil {
		t.Fatal("NewLimiter(0, ...) should disable limiting")
	}
	h := RateLimit(nil)(okHandler())
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
}
