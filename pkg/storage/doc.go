// Package storage provides the key-value persistence layer used to carry
// client-side session state across restarts.
//
// Three backends implement the Store interface:
//
//   - MemoryStore: in-process map, no continuity; default for tests.
//   - FileStore: single JSON document, atomic replace on every write.
//   - SQLiteStore: kv table in a local SQLite database, batches in a
//     transaction; for hosts already carrying a SQLite file.
//
// All backends honor the atomic-batch contract of Store.Apply: a batch of
// writes and deletes takes effect entirely or not at all. This is what lets
// the session layer persist token and user record together without ever
// exposing a half-written pair.
//
//	store, err := storage.NewFileStore(filepath.Join(cfgDir, "state.json"))
//	if err != nil {
//	    // fall back to storage.NewMemoryStore()
//	}
//	defer store.Close()
package storage
