package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second)
}

func TestHTTPClient_Register_SendsBodyAndDecodes(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, api.RegisterPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var in api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ana@example.com", in.Email)

		writeJSON(w, http.StatusCreated, api.AuthResponse{
			Message: "User created",
			User:    api.User{ID: "u-1", Email: in.Email},
			Token:   "tok",
		})
	})

	resp, err := c.Register(context.Background(), api.RegisterRequest{
		Name: "Ana", Surname: "Lee", Email: "ana@example.com", Password: "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "u-1", resp.User.ID)
}

func TestHTTPClient_Login_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   api.ErrorResponse
		want   error
	}{
		{"400", http.StatusBadRequest, api.ErrorResponse{Message: "Please provide email and password", Code: api.CodeValidation}, ErrValidation},
		{"401", http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid credentials", Code: api.CodeInvalidCredentials}, ErrUnauthorized},
		{"404", http.StatusNotFound, api.ErrorResponse{Code: api.CodeNotFound}, ErrNotFound},
		{"409", http.StatusConflict, api.ErrorResponse{Code: api.CodeDuplicateEmail}, ErrDuplicateEmail},
		{"500", http.StatusInternalServerError, api.ErrorResponse{Code: api.CodeInternal}, ErrUnavailable},
		{"418", http.StatusTeapot, api.ErrorResponse{}, ErrUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := c.Login(context.Background(), api.LoginRequest{Email: "a@b.c", Password: "x"})

			require.ErrorIs(t, err, tt.want)
			var re *ResponseError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.body.Code, re.Code)
		})
	}
}

func TestHTTPClient_Profile_PassesTokenAndMaps401(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.ProfilePath, r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Message: "Not authorized, token failed", Code: api.CodeUnauthenticated})
			return
		}
		writeJSON(w, http.StatusOK, api.ProfileResponse{User: api.User{ID: "u-1"}})
	})

	u, err := c.Profile(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	_, err = c.Profile(context.Background(), "bad")
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, "Not authorized, token failed", Message(err))
}

func TestHTTPClient_Profile_EmptyTokenSkipsRequest(t *testing.T) {
	called := false
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Profile(context.Background(), "")

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called)
}

func TestHTTPClient_Health(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.HealthPath, r.URL.Path)
		writeJSON(w, http.StatusOK, api.HealthResponse{OK: true, Time: now})
	})

	h, err := c.Health(context.Background())

	require.NoError(t, err)
	assert.True(t, h.OK)
	assert.True(t, now.Equal(h.Time))
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewHTTPClient(srv.URL, 50*time.Millisecond)

	_, err := c.Health(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, time.Second).Health(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_BadJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Health(context.Background())

	require.ErrorIs(t, err, ErrUnexpected)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Invalid email or password", Message(ErrUnauthorized))
	assert.Equal(t, "The server is unavailable, try again later",
		Message(&ResponseError{Status: 500, Message: "Internal server error", kind: ErrUnavailable}))
	assert.Equal(t, "Email already registered",
		Message(&ResponseError{Status: 409, Message: "Email already registered", kind: ErrDuplicateEmail}))
	assert.Equal(t, "Something went wrong", Message(errors.New("boom")))
}
