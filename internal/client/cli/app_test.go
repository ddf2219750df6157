package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/client"
	"github.com/Shivamkillarikar/CityGuardian/internal/client/config"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
)

func TestProfile_RedirectsToLoginWhenSignedOut(t *testing.T) {
	in := &stubInputs{answers: []string{"ana@example.com"}}
	in.install(t)
	s := &fakeSession{profile: &api.User{Name: "Ana", Surname: "Lee", Email: "ana@example.com", Address: "Main St"}}
	a, out := newTestApp(s)

	require.NoError(t, a.Profile(context.Background()))

	assert.Contains(t, out.String(), "Please log in first.")
	assert.Equal(t, "ana@example.com", s.lastEmail)
	assert.Equal(t, 1, s.profileCalls)
	assert.Contains(t, out.String(), "Address: Main St")
}

func TestProfile_FailedRedirectDoesNotCallServer(t *testing.T) {
	in := &stubInputs{answers: []string{"ana@example.com"}}
	in.install(t)
	s := &fakeSession{loginErr: client.ErrUnauthorized}
	a, _ := newTestApp(s)

	require.ErrorIs(t, a.Profile(context.Background()), client.ErrUnauthenticated)
	assert.Zero(t, s.profileCalls)

	require.ErrorIs(t, a.WhoAmI(context.Background()), client.ErrUnauthenticated)
}

func TestProfile_ExpiredToken(t *testing.T) {
	s := &fakeSession{user: &api.User{ID: "u-1"}, profileErr: client.ErrUnauthenticated}
	a, out := newTestApp(s)

	require.ErrorIs(t, a.Profile(context.Background()), client.ErrUnauthenticated)
	assert.Contains(t, out.String(), "Run 'logout' and 'login'")
}

func TestWhoAmI_UsesCachedUser(t *testing.T) {
	s := &fakeSession{user: &api.User{ID: "u-1", Name: "Ana", Surname: "Lee", Email: "ana@example.com", IsAdmin: true}}
	a, out := newTestApp(s)

	require.NoError(t, a.WhoAmI(context.Background()))

	assert.Zero(t, s.profileCalls)
	assert.Contains(t, out.String(), "Name:    Ana Lee")
	assert.Contains(t, out.String(), "administrator")
}

func TestHealth(t *testing.T) {
	a, out := newTestApp(&fakeSession{})
	require.NoError(t, a.Health(context.Background()))
	assert.Contains(t, out.String(), "Server is up (server time 2026-01-01T00:00:00Z)")

	a.health = fakeHealth{err: client.ErrUnavailable}
	require.ErrorIs(t, a.Health(context.Background()), client.ErrUnavailable)
	assert.Contains(t, out.String(), "The server is unavailable")
}

func TestNewApp_RestoresNothingAndRunsREPL(t *testing.T) {
	capturePrintln(t)
	cfg := &config.Config{
		ServerURL:      "http://127.0.0.1:1",
		SessionDB:      filepath.Join(t.TempDir(), "session.db"),
		RequestTimeout: time.Second,
	}

	a, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())

	a.reader = bufio.NewReader(strings.NewReader("help\nexit\n"))
	a.Run(context.Background())
}

func TestNewApp_BadDatabasePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg := &config.Config{SessionDB: filepath.Join(blocker, "s.db")}

	_, err := NewApp(context.Background(), cfg, logging.Nop())

	require.Error(t, err)
}

func TestRun_FormsReadFromTheCommandStream(t *testing.T) {
	capturePrintln(t)
	stubTerminal(t, false, nil, errors.New("terminal must not be used"))
	s := &fakeSession{}
	a, out := newTestApp(s)
	a.reader = bufio.NewReader(strings.NewReader("login\njane@x.com\nsecret\nwhoami\nexit\n"))

	a.Run(context.Background())

	assert.Equal(t, "jane@x.com", s.lastEmail)
	assert.Equal(t, "secret", s.lastPassword)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Email:   jane@x.com")
}

func TestRun_RegisterThroughPipedInput(t *testing.T) {
	capturePrintln(t)
	stubTerminal(t, false, nil, errors.New("terminal must not be used"))
	s := &fakeSession{}
	a, _ := newTestApp(s)
	a.reader = bufio.NewReader(strings.NewReader("register\nJane\nDoe\njane@x.com\n\npw\nexit\n"))

	a.Run(context.Background())

	assert.Equal(t, "Jane", s.lastRegister.Name)
	assert.Equal(t, "Doe", s.lastRegister.Surname)
	assert.Equal(t, "jane@x.com", s.lastRegister.Email)
	assert.Empty(t, s.lastRegister.Address)
	assert.Equal(t, "pw", s.lastRegister.Password)
}

func TestNewApp_LoginOverPipedStdinPersistsSession(t *testing.T) {
	capturePrintln(t)
	stubTerminal(t, false, nil, errors.New("terminal must not be used"))

	var got api.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.LoginPath, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Message: "Login successful",
			User:    api.User{ID: "u-1", Name: "Jane", Email: got.Email},
			Token:   "tok-1",
		})
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerURL:      srv.URL,
		SessionDB:      filepath.Join(t.TempDir(), "session.db"),
		RequestTimeout: time.Second,
	}

	a, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	a.reader = bufio.NewReader(strings.NewReader("login\njane@x.com\nsecret\nexit\n"))
	a.Run(context.Background())
	require.NoError(t, a.Close())

	assert.Equal(t, api.LoginRequest{Email: "jane@x.com", Password: "secret"}, got)

	restarted, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = restarted.Close() })
	assert.True(t, restarted.isLoggedIn())
	assert.Equal(t, "(jane@x.com)", restarted.getStatus())
}
