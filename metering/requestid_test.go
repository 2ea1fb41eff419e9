package metering

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	})

	h := RequestIDMiddleware(next)

	r := httptest.NewRequest(http.MethodPost, "http://example/ttx", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if seen == "" {
		t.Fatalf("expected generated request id on the request")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid, got %q: %v", seen, err)
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("expected same id echoed in response, got %q vs %q", got, seen)
	}
}

func TestRequestIDMiddleware_KeepsClientProvidedID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := RequestIDMiddleware(next)

	r := httptest.NewRequest(http.MethodPost, "http://example/ttx", nil)
	r.Header.Set(RequestIDHeader, "id-do-cliente")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get(RequestIDHeader); got != "id-do-cliente" {
		t.Fatalf("expected client id preserved, got %q", got)
	}
}
