package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	userID, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "test-secret")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r, _ := http.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := ExtractToken(r); got != tt.want {
			t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestIsRetryableError(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{}

	tests := []struct {
		name     string
		err      error
		want     bool
		wantType string
	}{
		{"nil", nil, false, ""},
		{"json syntax", syntaxErr, false, "json_decode_error"},
		{"no rows", pgx.ErrNoRows, false, "row_not_found"},
		{"duplicate key", errors.New(`ERROR: duplicate key value violates unique constraint`), false, "duplicate_key"},
		{"db connection", errors.New("failed to connect to host"), true, "db_connection_error"},
		{"deadline", context.DeadlineExceeded, true, "timeout"},
		{"canceled", context.Canceled, false, "context_canceled"},
		{"unknown", errors.New("something odd"), false, "unknown_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotType := IsRetryableError(tt.err)
			if got != tt.want || gotType != tt.wantType {
				t.Errorf("IsRetryableError() = (%v, %q), want (%v, %q)", got, gotType, tt.want, tt.wantType)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	if ShouldRetry(1, 3, false) {
		t.Error("non-retryable error should never retry")
	}
	if !ShouldRetry(3, 3, true) {
		t.Error("retry count at max should still retry")
	}
	if ShouldRetry(4, 3, true) {
		t.Error("retry count above max should stop")
	}
}

func TestFormatRetryKey(t *testing.T) {
	got := FormatRetryKey("task_changed", 17)
	want := fmt.Sprintf("retry:%s:%d", "task_changed", 17)
	if got != want {
		t.Errorf("FormatRetryKey() = %q, want %q", got, want)
	}
}
