package service

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/modabridge/storefront/internal/core/domain"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrMissingRecordID   = errors.New("record id is empty")
)

// collectionHandle is the untyped surface the store's registry works
// through: raw JSON in, raw JSON out. Each handle wraps one typed
// collection, so dispatch by table name needs no string switch.
type collectionHandle interface {
	upsertRaw(b []byte) (id string, err error)
	deleteByID(id string) bool
	replaceAllRaw(rows [][]byte) error
	loadJSON(b []byte) error
	marshalAll() ([]byte, error)
	size() int
}

// collection holds one entity type behind an RWMutex. Handler
// goroutines read concurrently; mutations and refreshes take the write
// lock. The items slice is never nil.
type collection[T domain.Record] struct {
	mu    sync.RWMutex
	items []T
}

func newCollection[T domain.Record]() *collection[T] {
	return &collection[T]{items: []T{}}
}

// upsert replaces the entry with a matching id, else prepends, so the
// newest record shows first the way the storefront lists have always
// been ordered.
func (c *collection[T]) upsert(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cur := range c.items {
		if cur.RecordID() == v.RecordID() {
			c.items[i] = v
			return
		}
	}
	c.items = append([]T{v}, c.items...)
}

func (c *collection[T]) upsertRaw(b []byte) (string, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return "", errors.Join(ErrMalformedRecord, err)
	}
	if v.RecordID() == "" {
		return "", ErrMissingRecordID
	}
	c.upsert(v)
	return v.RecordID(), nil
}

func (c *collection[T]) deleteByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cur := range c.items {
		if cur.RecordID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// replaceAllRaw swaps the whole collection for the fetched row
// payloads. Any undecodable row fails the swap and the previous value
// is retained by the caller.
func (c *collection[T]) replaceAllRaw(rows [][]byte) error {
	next := make([]T, 0, len(rows))
	for _, b := range rows {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return errors.Join(ErrMalformedRecord, err)
		}
		next = append(next, v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next
	return nil
}

func (c *collection[T]) loadJSON(b []byte) error {
	var next []T
	if err := json.Unmarshal(b, &next); err != nil {
		return errors.Join(ErrMalformedRecord, err)
	}
	if next == nil {
		next = []T{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = next
	return nil
}

func (c *collection[T]) marshalAll() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(c.items)
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.items {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
