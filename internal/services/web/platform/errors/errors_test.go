package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "forbidden", err: E(KindForbidden, "forbidden"), want: http.StatusForbidden},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "rate limited", err: E(KindRateLimited, "slow down"), want: http.StatusTooManyRequests},
		{name: "unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "unknown", err: E(KindUnknown, "unknown"), want: http.StatusInternalServerError},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped typed", err: fmt.Errorf("outer: %w", E(KindNotFound, "missing")), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%s: HTTPStatus() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestWrapKeepsCauseAndKey(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := Wrap(KindUnavailable, "pricing.error", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false, want true")
	}
	if got := LocalizationKey(err); got != "pricing.error" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "pricing.error")
	}
	if got := err.Error(); got != cause.Error() {
		t.Fatalf("Error() = %q, want %q", got, cause.Error())
	}
	if Wrap(KindUnavailable, "x", nil) != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
}

func TestLocalizationKeyIgnoresUntypedErrors(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(errors.New("boom")); got != "" {
		t.Fatalf("LocalizationKey() = %q, want empty", got)
	}
	if got := LocalizationKey(EK(KindInvalidInput, " auth.bad ", "bad")); got != "auth.bad" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "auth.bad")
	}
}
