package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peenly/backend/internal/services"
)

func TestRegisterGuardianPassThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register-guardian", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"phone":"123"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"g1"}`))
	}))
	defer upstream.Close()

	h := NewAuthHandler(services.NewUpstreamClient(upstream.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register-guardian", strings.NewReader(`{"phone":"123"}`))
	rec := httptest.NewRecorder()
	h.RegisterGuardian(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"g1"}`, rec.Body.String())
}

func TestRegisterGuardianUpstreamErrorStatusIsRelayed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"phone already registered"}`))
	}))
	defer upstream.Close()

	h := NewAuthHandler(services.NewUpstreamClient(upstream.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register-guardian", strings.NewReader(`{"phone":"123"}`))
	rec := httptest.NewRecorder()
	h.RegisterGuardian(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"phone already registered"}`, rec.Body.String())
}

func TestRegisterGuardianUpstreamUnreachable(t *testing.T) {
	// Point at a server that is already closed.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	h := NewAuthHandler(services.NewUpstreamClient(url))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register-guardian", strings.NewReader(`{"phone":"123"}`))
	rec := httptest.NewRecorder()
	h.RegisterGuardian(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
}
