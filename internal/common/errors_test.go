package common

import (
	"fmt"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   int
		msg    string
	}{
		{"denied", &AccessDeniedError{Message: "Access restricted to managers"}, http.StatusForbidden, CodeAccessDenied, "Access restricted to managers"},
		{"wrapped denied", fmt.Errorf("guard: %w", &AccessDeniedError{Message: "Access restricted to attendants"}), http.StatusForbidden, CodeAccessDenied, "Access restricted to attendants"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated, "unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, CodeForbidden, "forbidden"},
		{"store", fmt.Errorf("insert: %w", ErrStoreUnavailable), http.StatusServiceUnavailable, CodeStoreUnavailable, "store unavailable"},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError, CodeInternal, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, msg := Classify(tc.err)
			if status != tc.status || code != tc.code || msg != tc.msg {
				t.Fatalf("got (%d,%d,%q) want (%d,%d,%q)", status, code, msg, tc.status, tc.code, tc.msg)
			}
		})
	}
}

func TestNewULID(t *testing.T) {
	a, err := NewULID()
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	b, _ := NewULID()
	if len(a) != 26 || a == b {
		t.Fatalf("unexpected ulids %q %q", a, b)
	}
}
