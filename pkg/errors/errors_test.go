package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status int
		want   Code
	}{
		{http.StatusUnauthorized, CodeUnauthenticated},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusTooManyRequests, CodeRateLimit},
		{http.StatusUnprocessableEntity, CodeValidation},
		{http.StatusInternalServerError, CodeUpstream},
		{http.StatusBadGateway, CodeUpstream},
	}

	for _, tc := range cases {
		if got := FromStatus(tc.status); got != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, got)
		}
	}
}

func TestMessageFallsBackToPublicMessage(t *testing.T) {
	err := New(CodeUpstream, "")
	if err.Message() != "server error, please try again" {
		t.Fatalf("unexpected fallback message %q", err.Message())
	}

	err = New(CodeUpstream, "order service exploded")
	if err.Message() != "order service exploded" {
		t.Fatalf("expected explicit message to win, got %q", err.Message())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeTransport, cause, "calling user-management")

	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil {
		t.Fatal("expected typed error through wrapping")
	}
	if typed.Code() != CodeTransport {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if typed.Unwrap() != cause {
		t.Fatal("cause not preserved")
	}
	if !IsCode(err, CodeTransport) {
		t.Fatal("IsCode should match")
	}
}
