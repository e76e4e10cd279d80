package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/studyhubapp/studyhub-go/pkg/logger"
	"github.com/studyhubapp/studyhub-go/pkg/roles"
	"github.com/studyhubapp/studyhub-go/pkg/storage"
)

// DefaultStorageKey is the storage key the session record lives under.
const DefaultStorageKey = "session"

// Manager is the single source of truth for "who is using this client".
// It owns the process-wide session record, persists it across restarts,
// performs login/registration/logout against the backend, and exposes the
// role checks route guards and conditional UI are built on.
//
// The manager is the only writer of session state. All reads return
// snapshots; see Snapshot for the re-read rule.
type Manager struct {
	auth        Authenticator
	store       storage.Store
	storageKey  string
	watchBuffer int
	log         *slog.Logger

	initOnce    sync.Once
	initStarted atomic.Bool
	restored    chan struct{}

	mu     sync.Mutex
	status Status
	user   User
	token  string
	// epoch is bumped by Logout and ExpireSession. An in-flight login,
	// registration or restore records the epoch at issue and applies its
	// response only if the epoch is unchanged on arrival, so a stale
	// response can never resurrect a session cleared after it was issued.
	epoch uint64

	watchers    map[int]chan Snapshot
	nextWatcher int
}

// New creates a Manager in the Uninitialized state. Call Initialize once
// at startup before issuing logins.
func New(auth Authenticator, store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		auth:        auth,
		store:       store,
		storageKey:  DefaultStorageKey,
		watchBuffer: 8,
		log:         slog.New(slog.DiscardHandler),
		status:      StatusUninitialized,
		restored:    make(chan struct{}),
		watchers:    make(map[int]chan Snapshot),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize restores a previously persisted session, verify-first: the
// stored user is not revealed until the backend accepts the stored token.
// Nothing stored means Anonymous with no network call. Corrupt stored
// data, a rejected token or a network failure all resolve to Anonymous;
// none of them escape as errors. Safe to call more than once; only the
// first call does work.
func (m *Manager) Initialize(ctx context.Context) Status {
	m.initOnce.Do(func() {
		m.initStarted.Store(true)
		defer close(m.restored)
		m.restore(ctx)
	})
	return m.Status()
}

func (m *Manager) restore(ctx context.Context) {
	data, err := m.store.Get(ctx, m.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.log.Debug("session restore: storage read failed", logger.Error(err))
		}
		m.setAnonymous()
		return
	}

	var rec persistedSession
	if err := json.Unmarshal(data, &rec); err != nil || rec.Token == "" || rec.User.ID == "" {
		// Corrupt or half-meaningful record: discard, never surface.
		m.log.Debug("session restore: discarding corrupt record", logger.Error(err))
		m.mu.Lock()
		m.discardStored(ctx)
		m.clearLocked()
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.status = StatusRestoring
	epoch := m.epoch
	m.notifyLocked()
	m.mu.Unlock()

	user, err := m.auth.Verify(ctx, rec.Token)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.log.Debug("session restore: verify failed", logger.Error(err))
		m.discardStored(ctx)
		if m.epoch == epoch {
			m.clearLocked()
		}
		return
	}

	if m.epoch != epoch {
		// Session was expired while the verify was in flight.
		return
	}

	user.Role = roles.Parse(user.Role.String())
	m.user = user
	m.token = rec.Token
	m.status = StatusAuthenticated
	m.notifyLocked()

	// Re-persist so the stored user record tracks what the backend said.
	m.persist(ctx, persistedSession{Token: rec.Token, User: user})
}

// Login authenticates against the backend. On success the session is
// atomically replaced in memory and storage. On failure the error is
// propagated unchanged and the session is left exactly as it was.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	if err := m.waitRestored(ctx); err != nil {
		return User{}, err
	}

	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}

	return m.applyAuth(ctx, epoch, res)
}

// Register creates an account and treats success as an implicit login.
// Same contract as Login otherwise.
func (m *Manager) Register(ctx context.Context, reg Registration) (User, error) {
	if err := m.waitRestored(ctx); err != nil {
		return User{}, err
	}

	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	res, err := m.auth.Register(ctx, reg)
	if err != nil {
		return User{}, err
	}

	return m.applyAuth(ctx, epoch, res)
}

// applyAuth installs a successful auth result unless the session was
// cleared after the attempt was issued. Concurrent attempts apply in
// arrival order; the last one to complete fully overwrites.
func (m *Manager) applyAuth(ctx context.Context, epoch uint64, res AuthResult) (User, error) {
	res.User.Role = roles.Parse(res.User.Role.String())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return User{}, ErrSuperseded
	}
	m.user = res.User
	m.token = res.Token
	m.status = StatusAuthenticated
	m.notifyLocked()
	m.persist(ctx, persistedSession{Token: res.Token, User: res.User})

	return res.User, nil
}

// Logout clears the session from memory and storage. Local only: the
// backend is never called, and the operation cannot fail. Calling it with
// no session is a no-op. A logout issued while a login is in flight wins;
// the login's late response is discarded.
func (m *Manager) Logout(ctx context.Context) {
	// Queue behind a restore in progress so a restored session cannot
	// reappear after an explicit logout.
	if m.initStarted.Load() {
		select {
		case <-m.restored:
		case <-ctx.Done():
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.clearLocked()
	m.discardStored(ctx)
}

// ExpireSession is the local-clear path for "session expired" observed
// anywhere in the application: it is wired into the API client's 401 hook.
// Unlike Logout it never waits, so it is safe to call from any point in a
// request's lifecycle, including while a restore is still in flight.
func (m *Manager) ExpireSession() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.clearLocked()
	m.discardStored(context.Background())
}

// CurrentUser returns the current user, if any. Pure read.
func (m *Manager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusAuthenticated {
		return User{}, false
	}
	return m.user, true
}

// Status returns the session lifecycle state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// Token returns the current bearer token, or "" when unauthenticated.
// Satisfies apiclient.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// HasRole reports whether the current user's role is in the allowed set.
// Always false for an unauthenticated session.
func (m *Manager) HasRole(allowed ...roles.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusAuthenticated {
		return false
	}
	return m.user.Role.In(allowed...)
}

// Snapshot returns the current state as one consistent value.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Watch subscribes to session changes. The returned channel first carries
// the current snapshot, then one snapshot per state change. Subscribers
// that fall behind drop intermediate updates; they never block the
// manager. The channel is closed when ctx is done.
func (m *Manager) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, m.watchBuffer)

	m.mu.Lock()
	id := m.nextWatcher
	m.nextWatcher++
	m.watchers[id] = ch
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (m *Manager) waitRestored(ctx context.Context) error {
	if !m.initStarted.Load() {
		return ErrNotInitialized
	}
	select {
	case <-m.restored:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setAnonymous transitions to Anonymous and notifies watchers.
func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// clearLocked wipes user and token together and settles on Anonymous.
// Caller must hold m.mu.
func (m *Manager) clearLocked() {
	m.user = User{}
	m.token = ""
	m.status = StatusAnonymous
	m.notifyLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{Status: m.status, User: m.user}
}

// notifyLocked fans the current snapshot out to watchers without
// blocking. Caller must hold m.mu; sends happen under the lock so a
// watcher channel can never be closed mid-send.
func (m *Manager) notifyLocked() {
	snap := m.snapshotLocked()
	for _, ch := range m.watchers {
		select {
		case ch <- snap:
		default:
			// Subscriber is behind; it will re-read on its next receive.
		}
	}
}

// persist writes the session record as one document: token and user land
// in storage together or not at all. A storage failure costs continuity
// across restarts, not the live session, so it is logged and swallowed.
// Caller must hold m.mu.
func (m *Manager) persist(ctx context.Context, rec persistedSession) {
	data, err := json.Marshal(rec)
	if err != nil {
		m.log.Debug("session persist: encode failed", logger.Error(err))
		return
	}
	if err := m.store.Set(ctx, m.storageKey, data); err != nil {
		m.log.Debug("session persist: write failed", logger.Error(err), logger.UserID(rec.User.ID))
	}
}

// discardStored removes the persisted record; failures are swallowed.
// Caller must hold m.mu.
func (m *Manager) discardStored(ctx context.Context) {
	if err := m.store.Delete(ctx, m.storageKey); err != nil {
		m.log.Debug("session persist: delete failed", logger.Error(err))
	}
}
