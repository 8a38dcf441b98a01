package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/internal/client/api"
	"gonotes/internal/client/session"
	"gonotes/pkg/apperr"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, handler http.Handler, token string) (*api.Client, *session.AuthContext) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New(token)
	return api.New(srv.URL+"/api/", sess, api.WithHTTPClient(srv.Client())), sess
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]any{
			"user":  map[string]any{"id": 3, "name": "Alice", "email": "alice@example.com"},
			"token": "jwt-token",
		})
	})

	client, sess := newClient(t, mux, "")
	user, err := client.Login(context.Background(), "alice@example.com", "secret-password")
	require.NoError(t, err)

	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "jwt-token", sess.Token())
	key, ok := sess.OwnerKey()
	require.True(t, ok)
	assert.Equal(t, "user:3", key)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "title": "First", "body": nil, "owner_id": 3},
			{"id": 2, "title": "Second", "body": "text", "owner_id": 3},
		})
	})

	client, _ := newClient(t, mux, "jwt-token")
	notes, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Nil(t, notes[0].Body)
	require.NotNil(t, notes[1].Body)
	assert.Equal(t, "text", *notes[1].Body)
}

func TestEmptyListIsNotNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	client, _ := newClient(t, mux, "jwt-token")
	notes, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestUnauthenticatedClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notes/5", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
	})

	client, sess := newClient(t, mux, "expired-token")
	sess.SetSession("expired-token", session.User{ID: 3})

	_, err := client.GetNote(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.False(t, sess.Authenticated())
	_, ok := sess.User()
	assert.False(t, ok)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		kind   error
	}{
		{name: "forbidden", status: http.StatusForbidden, body: map[string]any{"message": "Forbidden"}, kind: apperr.ErrForbidden},
		{name: "not found", status: http.StatusNotFound, body: map[string]any{"message": "Note not found"}, kind: apperr.ErrNotFound},
		{name: "validation", status: http.StatusUnprocessableEntity, body: map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"title": {"cannot be blank"}},
		}, kind: apperr.ErrValidation},
		{name: "malformed", status: http.StatusBadRequest, body: map[string]any{"message": "Malformed request body."}, kind: apperr.ErrValidation},
		{name: "rate limited", status: http.StatusTooManyRequests, body: map[string]any{"message": "Too Many Attempts."}, kind: apperr.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("PUT /api/notes/9", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			client, sess := newClient(t, mux, "jwt-token")
			_, err := client.UpdateNote(context.Background(), 9, api.NoteInput{Title: "x"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, sess.Authenticated(), "only 401 clears the session")

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestValidationFieldsAreExposed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"title": {"cannot be blank"}},
		})
	})

	client, _ := newClient(t, mux, "jwt-token")
	_, err := client.CreateNote(context.Background(), api.NoteInput{})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "The given data was invalid.", apiErr.Message)
	assert.Equal(t, []string{"cannot be blank"}, apiErr.Fields["title"])
}

func TestUnknownStatusKeepsServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/notes/1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Server Error"})
	})

	client, _ := newClient(t, mux, "jwt-token")
	err := client.DeleteNote(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Server Error")
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestLogoutClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	})

	client, sess := newClient(t, mux, "jwt-token")
	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, sess.Authenticated())
}

func TestCreateOmitsMissingBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notes", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "body")
		assert.NotContains(t, body, "owner_id")
		writeJSON(w, http.StatusCreated, map[string]any{"id": 1, "title": body["title"], "owner_id": 3})
	})

	client, _ := newClient(t, mux, "jwt-token")
	note, err := client.CreateNote(context.Background(), api.NoteInput{Title: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", note.Title)
}

func TestMeRemembersUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/user", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 11, "name": "Bob", "email": "bob@example.com"})
	})

	client, sess := newClient(t, mux, "jwt-token")
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)

	key, ok := sess.OwnerKey()
	require.True(t, ok)
	assert.Equal(t, "user:11", key)
}
