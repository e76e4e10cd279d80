package studyhub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/studyhubapp/studyhub-go/pkg/apiclient"
	"github.com/studyhubapp/studyhub-go/pkg/guard"
	"github.com/studyhubapp/studyhub-go/pkg/roles"
	"github.com/studyhubapp/studyhub-go/pkg/session"
	"github.com/studyhubapp/studyhub-go/pkg/storage"
)

// Storage backends selectable through Config.StateBackend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the SDK configuration, loadable through pkg/config from the
// environment, a .env file or a YAML file.
type Config struct {
	// APIBaseURL is the backend API root, e.g. https://api.studyhub.example.
	APIBaseURL string `env:"STUDYHUB_API_URL,required" yaml:"api_base_url"`

	// HTTPTimeout bounds every backend call.
	HTTPTimeout time.Duration `env:"STUDYHUB_HTTP_TIMEOUT" envDefault:"15s" yaml:"http_timeout"`

	// StateBackend selects session persistence: memory, file or sqlite.
	StateBackend string `env:"STUDYHUB_STATE_BACKEND" envDefault:"file" yaml:"state_backend"`

	// StatePath locates the file or sqlite state; defaults to a studyhub
	// directory under the user config dir.
	StatePath string `env:"STUDYHUB_STATE_PATH" yaml:"state_path"`
}

// App wires the SDK together: storage, API client and session manager,
// with the client's 401 hook feeding the session expiry path and the
// session supplying bearer tokens to the client.
type App struct {
	Session *session.Manager
	API     *apiclient.Client
	Log     *slog.Logger

	store storage.Store
}

// Option is a functional option for configuring the App.
type Option func(*appOptions)

type appOptions struct {
	log        *slog.Logger
	store      storage.Store
	clientOpts []apiclient.Option
}

// WithLogger sets the logger shared by all SDK components.
func WithLogger(log *slog.Logger) Option {
	return func(o *appOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStore overrides the storage backend selected by Config.
func WithStore(store storage.Store) Option {
	return func(o *appOptions) {
		o.store = store
	}
}

// WithClientOptions appends extra options for the underlying API client.
func WithClientOptions(opts ...apiclient.Option) Option {
	return func(o *appOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// New builds the App. Call Initialize next, then Close when done.
func New(cfg Config, opts ...Option) (*App, error) {
	options := &appOptions{
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(options)
	}

	store := options.store
	if store == nil {
		var err error
		store, err = newStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Log:   options.log,
		store: store,
	}

	clientOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(options.log),
		// Late-bound: the manager does not exist yet. Token lookups and
		// 401 expiry both resolve through the app at call time.
		apiclient.WithTokenSource(apiclient.TokenSourceFunc(func() string {
			return app.Session.Token()
		})),
		apiclient.OnUnauthorized(func() {
			app.Log.Debug("session expired, clearing local state")
			app.Session.ExpireSession()
		}),
	}
	clientOpts = append(clientOpts, options.clientOpts...)

	client, err := apiclient.New(cfg.APIBaseURL, clientOpts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app.API = client
	app.Session = session.New(&authAdapter{client: client}, store,
		session.WithLogger(options.log),
	)

	return app, nil
}

// Initialize restores a persisted session, if any. See session.Manager.
func (a *App) Initialize(ctx context.Context) session.Status {
	return a.Session.Initialize(ctx)
}

// Check evaluates a guard requirement against the current session.
func (a *App) Check(req guard.Requirement) error {
	return req.Check(a.Session.Snapshot())
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.store.Close()
}

// newStore builds the storage backend named by the config.
func newStore(cfg Config) (storage.Store, error) {
	switch cfg.StateBackend {
	case BackendMemory, "":
		return storage.NewMemoryStore(), nil
	case BackendFile:
		path, err := statePath(cfg, "state.json")
		if err != nil {
			return nil, err
		}
		return storage.NewFileStore(path)
	case BackendSQLite:
		path, err := statePath(cfg, "state.db")
		if err != nil {
			return nil, err
		}
		return storage.NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("studyhub: unknown state backend %q", cfg.StateBackend)
	}
}

func statePath(cfg Config, name string) (string, error) {
	if cfg.StatePath != "" {
		return cfg.StatePath, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(errors.New("studyhub: resolve state path"), err)
	}

	dir := filepath.Join(base, "studyhub")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.Join(errors.New("studyhub: create state dir"), err)
	}

	return filepath.Join(dir, name), nil
}

// authAdapter exposes the API client through the session.Authenticator
// interface, translating wire records into session users.
type authAdapter struct {
	client *apiclient.Client
}

func (a *authAdapter) Login(ctx context.Context, email, password string) (session.AuthResult, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return session.AuthResult{}, err
	}
	return session.AuthResult{Token: resp.Token, User: toSessionUser(resp.User)}, nil
}

func (a *authAdapter) Register(ctx context.Context, reg session.Registration) (session.AuthResult, error) {
	resp, err := a.client.Register(ctx, apiclient.RegisterInput{
		Name:       reg.Name,
		Email:      reg.Email,
		Password:   reg.Password,
		Department: reg.Department,
		Semester:   reg.Semester,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return session.AuthResult{Token: resp.Token, User: toSessionUser(resp.User)}, nil
}

func (a *authAdapter) Verify(ctx context.Context, token string) (session.User, error) {
	user, err := a.client.MeWithToken(ctx, token)
	if err != nil {
		return session.User{}, err
	}
	return toSessionUser(user), nil
}

func toSessionUser(u apiclient.User) session.User {
	return session.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       roles.Parse(u.Role),
		Department: u.Department,
		Semester:   u.Semester,
	}
}
