package utils

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Logger:      NewLoggerTo(io.Discard, io.Discard),
	}

	attempts := 0
	err := r.Do("flaky op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do: unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts: got %d, want 3", attempts)
	}
}

func TestRetryExhausted(t *testing.T) {
	r := &RetryConfig{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		Logger:      NewLoggerTo(io.Discard, io.Discard),
	}

	wantErr := errors.New("permanent")
	err := r.Do("doomed op", func() error { return wantErr })

	if err == nil {
		t.Fatal("Do: expected error after exhausting attempts")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error should wrap the last failure, got %v", err)
	}
}
