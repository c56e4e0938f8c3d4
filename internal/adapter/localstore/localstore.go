package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/modabridge/storefront/internal/core/port"
)

var _ port.LocalStore = (*Storage)(nil)

// Storage is the embedded key-value persistence layer. It holds one
// JSON blob per collection key plus the session-flag keys, and is the
// sole storage medium when the remote gateway is not configured.
type Storage struct {
	db *leveldb.DB
}

func Open(path string) (*Storage, error) {
	const op = "localstore.Open"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{db}, nil
}

// Get returns the stored value or fallback. It never fails: an absent
// key or unreadable value yields fallback so callers always render on
// a defined state.
func (s *Storage) Get(key string, fallback []byte) []byte {
	const op = "Storage.Get"

	v, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if err != leveldb.ErrNotFound {
			slog.Warn("failed to read key", "op", op, "key", key, "err", err)
		}
		return fallback
	}
	return v
}

// GetJSON decodes the stored value into dst, or fallback when the key
// is absent or the stored value is not valid JSON.
func (s *Storage) GetJSON(key string, dst any, fallback []byte) {
	const op = "Storage.GetJSON"

	v := s.Get(key, fallback)
	if err := json.Unmarshal(v, dst); err != nil {
		slog.Warn("stored value is malformed", "op", op, "key", key, "err", err)
		_ = json.Unmarshal(fallback, dst)
	}
}

func (s *Storage) Set(key string, value []byte) error {
	const op = "Storage.Set"

	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) SetJSON(key string, v any) error {
	const op = "Storage.SetJSON"

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Set(key, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Has(key string) bool {
	ok, err := s.db.Has([]byte(key), nil)
	return err == nil && ok
}

func (s *Storage) Delete(key string) error {
	const op = "Storage.Delete"

	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Close() {
	const op = "Storage.Close"
	log := slog.With("op", op)

	log.Info("closing local store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local store is closed")
}
