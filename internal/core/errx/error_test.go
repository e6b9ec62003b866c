package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestStatus(t *testing.T) {
	base := errors.New("product not found: 7")
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", NotFound(base), http.StatusNotFound, "product not found: 7"},
		{"wrapped app error", fmt.Errorf("handler: %w", BadRequest(base)), http.StatusBadRequest, "product not found: 7"},
		{"unprocessable", Unprocessable(base), http.StatusUnprocessableEntity, "product not found: 7"},
		{"plain error", errors.New("pq: connection refused"), http.StatusInternalServerError, SystemErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			if status != tt.status || msg != tt.msg {
				t.Errorf("Status() = %d %q, want %d %q", status, msg, tt.status, tt.msg)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := New(base, http.StatusTeapot, "short and stout")
	if !errors.Is(err, base) {
		t.Error("AppError should unwrap to its cause")
	}
	if err.Error() != "short and stout: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapRedis(t *testing.T) {
	if WrapRedis(nil) != nil {
		t.Error("nil stays nil")
	}

	miss := WrapRedis(redis.Nil)
	if !IsCacheMiss(miss) {
		t.Error("redis.Nil should be a cache miss")
	}
	if status, msg := Status(miss); status != http.StatusNotFound || msg != CacheMissMessage {
		t.Errorf("miss status = %d %q", status, msg)
	}

	failed := WrapRedis(errors.New("dial tcp: i/o timeout"))
	if IsCacheMiss(failed) {
		t.Error("network errors are not misses")
	}
	if status, _ := Status(failed); status != http.StatusBadGateway {
		t.Errorf("failure status = %d", status)
	}
}
