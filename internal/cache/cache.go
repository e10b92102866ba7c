// Package cache persists extracted post records keyed by source content, so
// incremental builds skip recompiling unchanged articles.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Store is a SQLite-backed extraction cache.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the cache database at dbPath.
// Use ":memory:" for an in-memory cache.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, errors.CacheError("open", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.CacheError("open", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.CacheError("initialize", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		path TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		record TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashContent returns the cache key component for a source file's content.
func HashContent(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// Get returns the cached record for path if its content hash still matches.
// A stale or absent entry is a miss, not an error.
func (s *Store) Get(path, contentHash string) (post.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var storedHash string
	var payload []byte
	err := s.db.QueryRow(
		`SELECT content_hash, record FROM records WHERE path = ?`, path,
	).Scan(&storedHash, &payload)
	if err == sql.ErrNoRows {
		return post.Post{}, false, nil
	}
	if err != nil {
		return post.Post{}, false, errors.CacheError("get", err)
	}
	if storedHash != contentHash {
		return post.Post{}, false, nil
	}

	var p post.Post
	if err := json.Unmarshal(payload, &p); err != nil {
		// A corrupt entry behaves like a miss; the caller re-extracts and
		// overwrites it.
		return post.Post{}, false, nil
	}
	return p, true, nil
}

// Put stores or replaces the record for path.
func (s *Store) Put(path, contentHash string, p post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(p)
	if err != nil {
		return errors.CacheError("put", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO records (path, content_hash, record, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   record = excluded.record,
		   updated_at = excluded.updated_at`,
		path, contentHash, string(payload), time.Now().Unix(),
	)
	if err != nil {
		return errors.CacheError("put", err)
	}
	return nil
}
