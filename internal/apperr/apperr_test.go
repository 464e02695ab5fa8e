package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesKindAndMessage(t *testing.T) {
	sentinel := Unauthenticated("token revoked")
	wrapped := fmt.Errorf("authenticate: %w", Unauthenticated("token revoked"))

	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected wrapped error to match sentinel")
	}
	if errors.Is(wrapped, Unauthenticated("token expired")) {
		t.Fatalf("different message must not match")
	}
	if errors.Is(wrapped, Forbidden("token revoked")) {
		t.Fatalf("different kind must not match")
	}
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("could not load user", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if err.Error() != "could not load user: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindOfAndStatus(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal for plain errors, got %s", got)
	}
	if got := KindOf(fmt.Errorf("x: %w", Conflict("dup"))); got != KindConflict {
		t.Fatalf("expected conflict, got %s", got)
	}

	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindNotFound:        http.StatusNotFound,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindConflict:        http.StatusConflict,
		KindRateLimited:     http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		if got := HTTPStatus(kind); got != status {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", kind, got, status)
		}
	}
}
