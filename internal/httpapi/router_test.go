package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(nil)

	recorder := doRequest(t, router, http.MethodGet, "/nope", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestRouterCORSHeaders(t *testing.T) {
	bankMC, bankTF := testBanks()
	router := NewRouter(NewSeededAPI(bankMC, bankTF, nil, 1), []string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow-origin header = %q", got)
	}
}

func TestRouterSkipsCORSWhenUnconfigured(t *testing.T) {
	bankMC, bankTF := testBanks()
	router := NewRouter(NewSeededAPI(bankMC, bankTF, nil, 1), nil)

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header, got %q", got)
	}
}
