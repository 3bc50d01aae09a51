// internal/app/store/localkv/localkv.go

// Package localkv is the local single-process storage medium behind demo
// mode: a string-keyed table in a SQLite file with a byte quota over the
// stored values. Everything is synchronous; there is exactly one writer (the
// demo user's own session), so no locking beyond SQLite's own.
package localkv

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var (
	// ErrQuotaExceeded is returned by Put when the write would push the
	// store past its byte quota.
	ErrQuotaExceeded = errors.New("local store quota exceeded")

	// ErrPartialSave is returned by PutJSON when the record could only be
	// persisted after its embedded image payloads were stripped. The data
	// minus images is saved; callers decide whether that counts as failure.
	ErrPartialSave = errors.New("record saved with embedded images removed")
)

// imageFields are the field names whose oversized string values get nulled
// when a write runs into the quota.
var imageFields = map[string]bool{
	"imageUrl": true,
	"photoURL": true,
	"image":    true,
	"preview":  true,
}

// largeImageValue is the length past which a known image field is treated as
// an embedded payload rather than a short URL.
const largeImageValue = 500

// Store is the local key/value medium.
type Store struct {
	db    *sql.DB
	quota int64
	log   *zap.Logger
}

// Open creates or opens the store at path. quotaBytes caps the total size of
// stored values; zero or negative means unlimited.
func Open(path string, quotaBytes int64, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	return &Store{db: db, quota: quotaBytes, log: logger}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Put stores value under key, replacing any previous value. Returns
// ErrQuotaExceeded if the write would exceed the quota; the previous value
// for the key is left intact in that case.
func (s *Store) Put(key, value string) error {
	if s.quota > 0 {
		used, err := s.usedExcept(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.quota {
			return ErrQuotaExceeded
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Keys returns all keys with the given prefix.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`,
		strings.ReplaceAll(strings.ReplaceAll(prefix, "%", `\%`), "_", `\_`)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Reset removes every key. Used by account teardown, where demo mode has no
// reactive invalidation channel and a clean slate stands in for a client
// restart.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

// Used returns the total bytes of stored values.
func (s *Store) Used() (int64, error) {
	return s.usedExcept("")
}

func (s *Store) usedExcept(key string) (int64, error) {
	var n int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key != ?`, key).Scan(&n)
	return n, err
}

// GetJSON unmarshals the value for key into v. Returns false when the key is
// absent.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON is the quota-safe write path. It marshals v and stores it under
// key. If the write exceeds the quota, it strips embedded image payloads
// from the record(s) and retries once:
//
//   - any of the known image fields whose string value is longer than 500
//     bytes is nulled;
//   - any string value anywhere that is a data:image payload is nulled.
//
// A successful retry returns ErrPartialSave so the loss is distinguishable.
// If the stripped retry still fails, the write is abandoned and the error
// returned.
func (s *Store) PutJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	err = s.Put(key, string(raw))
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	s.log.Warn("local store quota exceeded, stripping image data",
		zap.String("key", key), zap.Int("size", len(raw)))

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("re-decode %s for stripping: %w", key, err)
	}
	stripped, err := json.Marshal(stripImages(generic))
	if err != nil {
		return fmt.Errorf("encode stripped %s: %w", key, err)
	}

	if err := s.Put(key, string(stripped)); err != nil {
		s.log.Error("local store write failed even after stripping images",
			zap.String("key", key), zap.Error(err))
		return err
	}
	return ErrPartialSave
}

// stripImages walks a decoded JSON value and nulls out embedded image
// payloads. Arrays and objects are rebuilt; everything else passes through.
func stripImages(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stripImages(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if str, ok := item.(string); ok {
				if imageFields[k] && len(str) > largeImageValue {
					out[k] = nil
					continue
				}
				if strings.HasPrefix(str, "data:image") {
					out[k] = nil
					continue
				}
			}
			out[k] = stripImages(item)
		}
		return out
	default:
		return v
	}
}
