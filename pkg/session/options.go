package session

import "log/slog"

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithLogger sets the logger for restore and persistence diagnostics.
// The manager only logs at debug level: every failure it observes is
// either recovered locally or propagated to the caller.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStorageKey overrides the storage key the session record is
// persisted under. Defaults to "session".
func WithStorageKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.storageKey = key
		}
	}
}

// WithWatchBuffer sets the per-subscriber buffer for Watch channels.
// Subscribers that fall further behind drop updates rather than block
// the manager. Defaults to 8.
func WithWatchBuffer(size int) Option {
	return func(m *Manager) {
		if size > 0 {
			m.watchBuffer = size
		}
	}
}
