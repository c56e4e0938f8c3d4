package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
)

var _ port.SyncStore = (*Store)(nil)

var emptyJSONArray = []byte("[]")

// Store is the sync orchestrator: the canonical in-memory collections
// with write-through to the local store and, when configured, the
// remote gateway.
//
// Mutations are optimistic. The local change always lands; a remote
// failure is reported through the returned error but never rolled
// back. The two sides may diverge until the next successful RefreshAll
// pulls the server's version back down.
type Store struct {
	local  port.LocalStore
	remote port.TableGateway

	products        *collection[domain.Product]
	categories      *collection[domain.Category]
	subCategories   *collection[domain.SubCategory]
	carouselSlides  *collection[domain.CarouselSlide]
	enquiries       *collection[domain.Enquiry]
	adminUsers      *collection[domain.AdminUser]
	productStats    *collection[domain.ProductStats]
	orders          *collection[domain.Order]
	articles        *collection[domain.Article]
	subscribers     *collection[domain.Subscriber]
	trainingModules *collection[domain.TrainingModule]
	settings        *collection[domain.SiteSettings]

	handles map[domain.Collection]collectionHandle
}

func NewStore(local port.LocalStore, gateway port.TableGateway) *Store {
	s := &Store{
		local:           local,
		remote:          gateway,
		products:        newCollection[domain.Product](),
		categories:      newCollection[domain.Category](),
		subCategories:   newCollection[domain.SubCategory](),
		carouselSlides:  newCollection[domain.CarouselSlide](),
		enquiries:       newCollection[domain.Enquiry](),
		adminUsers:      newCollection[domain.AdminUser](),
		productStats:    newCollection[domain.ProductStats](),
		orders:          newCollection[domain.Order](),
		articles:        newCollection[domain.Article](),
		subscribers:     newCollection[domain.Subscriber](),
		trainingModules: newCollection[domain.TrainingModule](),
		settings:        newCollection[domain.SiteSettings](),
	}

	s.handles = map[domain.Collection]collectionHandle{
		domain.CollectionProducts:        s.products,
		domain.CollectionCategories:      s.categories,
		domain.CollectionSubCategories:   s.subCategories,
		domain.CollectionCarouselSlides:  s.carouselSlides,
		domain.CollectionEnquiries:       s.enquiries,
		domain.CollectionAdminUsers:      s.adminUsers,
		domain.CollectionProductStats:    s.productStats,
		domain.CollectionOrders:          s.orders,
		domain.CollectionArticles:        s.articles,
		domain.CollectionSubscribers:     s.subscribers,
		domain.CollectionTrainingModules: s.trainingModules,
		domain.CollectionSettings:        s.settings,
	}

	return s
}

// LoadLocal seeds every collection from its persisted key so a restart
// restores the latest known state without a network round-trip.
func (s *Store) LoadLocal() {
	const op = "Store.LoadLocal"
	log := slog.With("op", op)

	for _, table := range domain.Collections() {
		h := s.handles[table]
		b := s.local.Get(table.LocalKey(), emptyJSONArray)
		if err := h.loadJSON(b); err != nil {
			log.Warn("persisted collection is malformed, starting empty",
				"collection", table, "err", err)
			continue
		}
		log.Debug("collection loaded", "collection", table, "size", h.size())
	}
}

// SeedDefaults creates the settings singleton when no record exists
// yet, so the storefront renders on first run.
func (s *Store) SeedDefaults(ctx context.Context) {
	const op = "Store.SeedDefaults"

	if s.settings.size() > 0 {
		return
	}

	b, _ := json.Marshal(domain.DefaultSiteSettings())
	if err := s.Update(ctx, domain.CollectionSettings, b); err != nil {
		slog.Warn("failed to persist default settings remotely",
			"op", op, "err", err)
	}
}

// Update upserts the record into the collection by id, mirrors the
// collection to the local store synchronously, then writes through to
// the remote gateway when configured. A non-nil error means the remote
// write failed; the optimistic local change stays in place either way.
func (s *Store) Update(
	ctx context.Context, table domain.Collection, record []byte,
) error {
	const op = "Store.Update"

	id, err := s.ApplyLocal(table, record)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.PersistRemote(ctx, table, id, record); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ApplyLocal is the synchronous half of Update: memory plus the local
// mirror, no network.
func (s *Store) ApplyLocal(table domain.Collection, record []byte) (string, error) {
	const op = "Store.ApplyLocal"

	h, ok := s.handles[table]
	if !ok {
		return "", fmt.Errorf("%s: %q: %w", op, table, ErrUnknownCollection)
	}

	id, err := h.upsertRaw(record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mirrorLocal(table, h)
	return id, nil
}

// PersistRemote writes the record through to the remote gateway. It is
// a no-op in local-only mode.
func (s *Store) PersistRemote(
	ctx context.Context, table domain.Collection, id string, record []byte,
) error {
	const op = "Store.PersistRemote"

	if !s.remote.Configured() {
		return nil
	}

	err := s.remote.Upsert(ctx, table, port.Row{ID: id, Payload: record})
	if err != nil {
		s.logRemoteFailure(op, table, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes the record from memory and the local mirror first,
// then attempts the remote deletion.
func (s *Store) Delete(
	ctx context.Context, table domain.Collection, id string,
) error {
	const op = "Store.Delete"

	if err := s.RemoveLocal(table, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.PersistRemoteDelete(ctx, table, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveLocal is the synchronous half of Delete. Removing an id that
// is already gone is not an error.
func (s *Store) RemoveLocal(table domain.Collection, id string) error {
	const op = "Store.RemoveLocal"

	h, ok := s.handles[table]
	if !ok {
		return fmt.Errorf("%s: %q: %w", op, table, ErrUnknownCollection)
	}

	h.deleteByID(id)
	s.mirrorLocal(table, h)
	return nil
}

// PersistRemoteDelete deletes the row remotely; no-op in local-only
// mode.
func (s *Store) PersistRemoteDelete(
	ctx context.Context, table domain.Collection, id string,
) error {
	const op = "Store.PersistRemoteDelete"

	if !s.remote.Configured() {
		return nil
	}

	if err := s.remote.Delete(ctx, table, id); err != nil {
		s.logRemoteFailure(op, table, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Has reports whether the collection name is part of the registry.
func (s *Store) Has(table domain.Collection) bool {
	_, ok := s.handles[table]
	return ok
}

// RefreshAll re-fetches every collection from the remote gateway in
// parallel and overwrites memory and the local mirror. Collections
// settle independently: one failed fetch never blocks the others, and
// a failed collection keeps its previous value.
func (s *Store) RefreshAll(ctx context.Context) {
	const op = "Store.RefreshAll"

	if !s.remote.Configured() {
		slog.Debug("remote gateway not configured, skipping refresh", "op", op)
		return
	}

	var wg sync.WaitGroup
	for table, h := range s.handles {
		wg.Add(1)
		go func(table domain.Collection, h collectionHandle) {
			defer wg.Done()
			s.refreshOne(ctx, table, h)
		}(table, h)
	}
	wg.Wait()
}

func (s *Store) refreshOne(
	ctx context.Context, table domain.Collection, h collectionHandle,
) {
	const op = "Store.refreshOne"

	rows, err := s.remote.FetchAll(ctx, table)
	if err != nil {
		s.logRemoteFailure(op, table, err)
		return
	}

	payloads := make([][]byte, 0, len(rows))
	for _, r := range rows {
		payloads = append(payloads, r.Payload)
	}

	if err := h.replaceAllRaw(payloads); err != nil {
		slog.Warn("fetched rows are malformed, keeping previous value",
			"op", op, "collection", table, "err", err)
		return
	}

	s.mirrorLocal(table, h)
}

// Snapshot returns the collection as a JSON array.
func (s *Store) Snapshot(table domain.Collection) ([]byte, error) {
	const op = "Store.Snapshot"

	h, ok := s.handles[table]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", op, table, ErrUnknownCollection)
	}
	b, err := h.marshalAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s *Store) mirrorLocal(table domain.Collection, h collectionHandle) {
	const op = "Store.mirrorLocal"

	b, err := h.marshalAll()
	if err != nil {
		slog.Error("failed to marshal collection", "op", op,
			"collection", table, "err", err)
		return
	}
	if err := s.local.Set(table.LocalKey(), b); err != nil {
		slog.Error("failed to mirror collection", "op", op,
			"collection", table, "err", err)
	}
}

func (s *Store) logRemoteFailure(op string, table domain.Collection, err error) {
	log := slog.With("op", op, "collection", table)
	switch {
	case errors.Is(err, port.ErrSchemaMissing):
		log.Warn("remote table missing, degrading to local value", "err", err)
	case errors.Is(err, port.ErrUnavailable):
		log.Warn("remote unreachable, keeping local value", "err", err)
	default:
		log.Warn("remote call failed, keeping local value", "err", err)
	}
}
