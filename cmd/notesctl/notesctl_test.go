package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gonotes/internal/client/api"
	"gonotes/internal/client/session"
	notesHTTP "gonotes/internal/notes/adapters/http"
	"gonotes/internal/notes/adapters/memory"
	"gonotes/internal/notes/adapters/services"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/config"
	domain "gonotes/internal/notes/domain/services"
	"gonotes/pkg/apperr"
)

type harness struct {
	apiURL    string
	stateFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(EnvToken, "")

	notesRepo := memory.NewNoteRepository(nil)
	factory := services.NewServiceFactory(domain.JWTConfig{
		SecretKey: []byte("notesctl-test-secret-key-with-enough-bytes"),
		Issuer:    "gonotes-test",
		TokenTTL:  time.Hour,
	}, 4)
	server := notesHTTP.NewApp(config.HTTPConfig{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
		BodyLimit:    64 * 1024,
	}, notesHTTP.Dependencies{
		Notes: app.NewNoteUseCase(notesRepo),
		Auth: app.NewAuthUseCase(memory.NewUserRepository(nil), factory.PasswordService(),
			factory.TokenService(), memory.NewRevocationStore(nil)),
		Health: notesRepo,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = server.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() { _ = server.Shutdown() })

	return &harness{
		apiURL:    "http://" + ln.Addr().String() + "/api",
		stateFile: filepath.Join(t.TempDir(), "session.yaml"),
	}
}

// run выполняет команду как отдельный запуск notesctl.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", h.apiURL, "--session-file", h.stateFile}, args...)
	err := execute(context.Background(), newCLI(), full, &stdout, &stderr)
	return stdout.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, "notesctl %v", args)
	return out
}

func (h *harness) register(t *testing.T, email string) {
	t.Helper()
	h.mustRun(t, "register", "--name", "Ann", "--email", email, "--password", "password123")
}

func TestNotesctl_Lifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "register", "--name", "Ann", "--email", "ann@example.com", "--password", "password123")
	assert.Contains(t, out, "Ann <ann@example.com>")

	st, err := loadState(h.stateFile)
	require.NoError(t, err)
	assert.NotEmpty(t, st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, "ann@example.com", st.User.Email)

	assert.Contains(t, h.mustRun(t, "whoami"), "ann@example.com")
	assert.Contains(t, h.mustRun(t, "list"), "No notes yet.")

	out = h.mustRun(t, "create", "--title", "Groceries", "--body", "milk", "-o", "yaml")
	var created api.Note
	require.NoError(t, yaml.Unmarshal([]byte(out), &created))
	assert.Equal(t, "Groceries", created.Title)
	require.NotNil(t, created.Body)
	assert.Equal(t, "milk", *created.Body)

	id := strconv.FormatInt(created.ID, 10)
	out = h.mustRun(t, "list")
	assert.Contains(t, out, "Groceries")

	out = h.mustRun(t, "edit", id, "--body", "milk, eggs")
	assert.Contains(t, out, "#"+id+" Groceries")
	assert.Contains(t, out, "milk, eggs")

	out = h.mustRun(t, "edit", id, "--clear-body", "-o", "yaml")
	var edited api.Note
	require.NoError(t, yaml.Unmarshal([]byte(out), &edited))
	assert.Equal(t, "Groceries", edited.Title)
	assert.Nil(t, edited.Body)

	assert.Contains(t, h.mustRun(t, "show", id), "Groceries")
	assert.Contains(t, h.mustRun(t, "delete", id), "Note Deleted")
	assert.Contains(t, h.mustRun(t, "list"), "No notes yet.")

	_, err = h.run(t, "show", id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Contains(t, h.mustRun(t, "logout"), "Logged out")
	_, err = os.Stat(h.stateFile)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = h.run(t, "list")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestNotesctl_ForeignNoteIsForbidden(t *testing.T) {
	h := newHarness(t)

	h.register(t, "ann@example.com")
	out := h.mustRun(t, "create", "--title", "Private", "-o", "yaml")
	var note api.Note
	require.NoError(t, yaml.Unmarshal([]byte(out), &note))
	h.mustRun(t, "logout")

	h.register(t, "bob@example.com")
	_, err := h.run(t, "show", strconv.FormatInt(note.ID, 10))
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = h.run(t, "delete", strconv.FormatInt(note.ID, 10))
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Contains(t, h.mustRun(t, "list"), "No notes yet.")
}

func TestNotesctl_ValidationErrorsListFields(t *testing.T) {
	h := newHarness(t)
	h.register(t, "ann@example.com")

	_, err := h.run(t, "create", "--title", "   ")
	require.ErrorIs(t, err, apperr.ErrValidation)

	msg := formatError(err)
	assert.True(t, strings.HasPrefix(msg, "Error: "))
	assert.Contains(t, msg, "\n  title: ")
}

func TestNotesctl_LoginAfterLogout(t *testing.T) {
	h := newHarness(t)
	h.register(t, "ann@example.com")
	h.mustRun(t, "create", "--title", "Kept")
	h.mustRun(t, "logout")

	_, err := h.run(t, "login", "--email", "ann@example.com", "--password", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	h.mustRun(t, "login", "--email", "ann@example.com", "--password", "password123")
	assert.Contains(t, h.mustRun(t, "list"), "Kept")
}

func TestNotesctl_RevokedTokenClearsSavedSession(t *testing.T) {
	h := newHarness(t)
	h.register(t, "ann@example.com")

	st, err := loadState(h.stateFile)
	require.NoError(t, err)

	h.mustRun(t, "logout")
	// Старый токен уже отозван сервером.
	require.NoError(t, saveState(h.stateFile, state{Token: st.Token}))

	_, err = h.run(t, "whoami")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = os.Stat(h.stateFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNotesctl_TokenFromEnvironmentIsNotSaved(t *testing.T) {
	h := newHarness(t)
	h.register(t, "ann@example.com")

	st, err := loadState(h.stateFile)
	require.NoError(t, err)
	require.NoError(t, removeState(h.stateFile))

	t.Setenv(EnvToken, st.Token)
	assert.Contains(t, h.mustRun(t, "whoami"), "ann@example.com")

	_, err = os.Stat(h.stateFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNotesctl_ArgumentErrors(t *testing.T) {
	h := newHarness(t)
	h.register(t, "ann@example.com")

	_, err := h.run(t, "show", "abc")
	assert.ErrorIs(t, err, ErrInvalidNoteID)
	_, err = h.run(t, "delete", "0")
	assert.ErrorIs(t, err, ErrInvalidNoteID)
	_, err = h.run(t, "edit", "1")
	assert.ErrorIs(t, err, ErrNothingToEdit)
	_, err = h.run(t, "list", "-o", "json")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	st, err := loadState(path)
	require.NoError(t, err)
	assert.Empty(t, st.Token)

	user := session.User{ID: 7, Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, saveState(path, state{Token: "tok", User: &user}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	st, err = loadState(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, int64(7), st.User.ID)

	require.NoError(t, removeState(path))
	require.NoError(t, removeState(path))
}
