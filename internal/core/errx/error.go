package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// CacheErrorMessage describes Redis related failures.
	CacheErrorMessage = "cache operation failed"
	// CacheMissMessage is used when a key does not exist.
	CacheMissMessage = "cache miss"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError.
func New(err error, status int, message string) *AppError {
	return &AppError{Err: err, Status: status, Message: message}
}

// NotFound, BadRequest and Unprocessable are shorthands for the statuses
// handlers return most often.
func NotFound(err error) *AppError { return New(err, http.StatusNotFound, err.Error()) }

func BadRequest(err error) *AppError { return New(err, http.StatusBadRequest, err.Error()) }

func Unprocessable(err error) *AppError {
	return New(err, http.StatusUnprocessableEntity, err.Error())
}

// Status extracts the HTTP status and safe message from err. Errors that are
// not AppErrors map to 500 with SystemErrorMessage.
func Status(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}
	return http.StatusInternalServerError, SystemErrorMessage
}

// WrapRedis maps Redis errors onto AppError. redis.Nil becomes a 404 miss.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, CacheMissMessage)
	}
	return New(err, http.StatusBadGateway, CacheErrorMessage)
}

// IsCacheMiss reports whether err is a wrapped redis.Nil.
func IsCacheMiss(err error) bool { return errors.Is(err, redis.Nil) }
