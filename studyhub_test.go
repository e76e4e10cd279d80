package studyhub_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studyhub "github.com/studyhubapp/studyhub-go"
	"github.com/studyhubapp/studyhub-go/pkg/apiclient"
	"github.com/studyhubapp/studyhub-go/pkg/guard"
	"github.com/studyhubapp/studyhub-go/pkg/roles"
	"github.com/studyhubapp/studyhub-go/pkg/session"
	"github.com/studyhubapp/studyhub-go/pkg/storage"
)

// fakeBackend is an httptest stand-in for the studyhub API.
type fakeBackend struct {
	mu     sync.Mutex
	tokens map[string]apiclient.User
}

func newBackend() *fakeBackend {
	return &fakeBackend{tokens: make(map[string]apiclient.User)}
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["email"] != "a@x.com" || body["password"] != "goodpass" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid email or password"}`))
			return
		}

		user := apiclient.User{
			ID: "1", Name: "A", Email: "a@x.com",
			Role: "student", Department: "CS", Semester: 3,
		}
		b.mu.Lock()
		b.tokens["t1"] = user
		b.mu.Unlock()

		_ = json.NewEncoder(w).Encode(apiclient.AuthResponse{Token: "t1", User: user})
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		user, ok := b.authorize(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})

	mux.HandleFunc("GET /materials", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.authorize(r); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"token expired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode([]apiclient.Material{})
	})

	return mux
}

func (b *fakeBackend) authorize(r *http.Request) (apiclient.User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.tokens[token]
	return user, ok
}

func (b *fakeBackend) revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

func newApp(t *testing.T, baseURL string, store storage.Store) *studyhub.App {
	t.Helper()
	app, err := studyhub.New(
		studyhub.Config{APIBaseURL: baseURL},
		studyhub.WithStore(store),
	)
	require.NoError(t, err)
	return app
}

func TestApp_LoginEndToEnd(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	store := storage.NewMemoryStore()
	app := newApp(t, srv.URL, store)
	defer app.Close()

	require.Equal(t, session.StatusAnonymous, app.Initialize(t.Context()))

	user, err := app.Session.Login(t.Context(), "a@x.com", "goodpass")
	require.NoError(t, err)

	assert.Equal(t, roles.Student, user.Role)
	assert.False(t, app.Session.HasRole(roles.StudentAdmin, roles.Admin))
	assert.True(t, app.Session.HasRole(roles.Student))

	current, ok := app.Session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "1", current.ID)
	assert.Equal(t, "CS", current.Department)
	assert.Equal(t, 3, current.Semester)
}

func TestApp_LoginFailurePropagates(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	app := newApp(t, srv.URL, storage.NewMemoryStore())
	defer app.Close()
	app.Initialize(t.Context())

	_, err := app.Session.Login(t.Context(), "a@x.com", "badpass")
	require.ErrorIs(t, err, apiclient.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Invalid email or password")
	assert.Equal(t, session.StatusAnonymous, app.Session.Status())
}

func TestApp_RestoreAcrossProcesses(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	store := storage.NewMemoryStore()
	defer store.Close()

	first := newApp(t, srv.URL, store)
	first.Initialize(t.Context())
	_, err := first.Session.Login(t.Context(), "a@x.com", "goodpass")
	require.NoError(t, err)

	// "Fresh process" over the same store: verify-first restore.
	second := newApp(t, srv.URL, store)
	status := second.Initialize(t.Context())
	require.Equal(t, session.StatusAuthenticated, status)

	current, ok := second.Session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", current.Email)
}

func TestApp_RestoreWithRevokedToken(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	store := storage.NewMemoryStore()
	defer store.Close()

	first := newApp(t, srv.URL, store)
	first.Initialize(t.Context())
	_, err := first.Session.Login(t.Context(), "a@x.com", "goodpass")
	require.NoError(t, err)

	backend.revoke("t1")

	second := newApp(t, srv.URL, store)
	assert.Equal(t, session.StatusAnonymous, second.Initialize(t.Context()))
}

func TestApp_UnauthorizedAnywhereClearsSession(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	store := storage.NewMemoryStore()
	app := newApp(t, srv.URL, store)
	defer app.Close()
	app.Initialize(t.Context())

	_, err := app.Session.Login(t.Context(), "a@x.com", "goodpass")
	require.NoError(t, err)

	// The token dies server-side; the next materials call observes a 401
	// and the session clears itself locally.
	backend.revoke("t1")

	_, err = app.API.ListMaterials(t.Context(), apiclient.MaterialFilter{})
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)

	assert.Equal(t, session.StatusAnonymous, app.Session.Status())
	_, storeErr := store.Get(t.Context(), session.DefaultStorageKey)
	assert.ErrorIs(t, storeErr, storage.ErrKeyNotFound)
}

func TestApp_GuardIntegration(t *testing.T) {
	backend := newBackend()
	srv := httptest.NewServer(backend.handler(t))
	defer srv.Close()

	app := newApp(t, srv.URL, storage.NewMemoryStore())
	defer app.Close()
	app.Initialize(t.Context())

	uploadGate := guard.RequireRoles(roles.StudentAdmin, roles.Admin)

	assert.ErrorIs(t, app.Check(uploadGate), guard.ErrLoginRequired)

	_, err := app.Session.Login(t.Context(), "a@x.com", "goodpass")
	require.NoError(t, err)

	// A plain student is authenticated but not allowed to upload.
	assert.NoError(t, app.Check(guard.Authenticated()))
	assert.ErrorIs(t, app.Check(uploadGate), guard.ErrAccessDenied)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := studyhub.New(studyhub.Config{
		APIBaseURL:   "https://api.example.com",
		StateBackend: "etcd",
	})
	assert.Error(t, err)
}
