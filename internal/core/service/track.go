package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
)

const (
	trafficLogKey = "traffic_log"
	trafficLogCap = 1000
)

// Tracker records page views and product interactions. Events append
// to the local traffic log and, when a broker is configured, go to the
// traffic topic; counters upsert into product_stats incrementally.
// Everything here is best-effort: tracking never fails a request.
type Tracker struct {
	store    *Store
	local    port.LocalStore
	producer port.TrafficProducer
}

// NewTracker accepts a nil producer when no broker is configured.
func NewTracker(store *Store, local port.LocalStore, producer port.TrafficProducer) *Tracker {
	return &Tracker{store: store, local: local, producer: producer}
}

func (t *Tracker) RecordVisit(ctx context.Context, evt domain.TrafficEvent) {
	const op = "Tracker.RecordVisit"
	log := slog.With("op", op)

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}

	t.appendLocal(evt)

	if t.producer != nil {
		if err := t.producer.ProduceEvent(ctx, evt); err != nil {
			log.Warn("failed to produce traffic event", "err", err)
		}
	}

	if evt.ProductID != "" {
		t.bumpStats(ctx, evt.ProductID, false)
	}
}

// RecordClick counts an affiliate-link click-through.
func (t *Tracker) RecordClick(ctx context.Context, productID string) {
	t.bumpStats(ctx, productID, true)
}

func (t *Tracker) appendLocal(evt domain.TrafficEvent) {
	const op = "Tracker.appendLocal"

	var evts []domain.TrafficEvent
	b := t.local.Get(trafficLogKey, emptyJSONArray)
	if err := json.Unmarshal(b, &evts); err != nil {
		evts = nil
	}

	evts = append(evts, evt)
	if len(evts) > trafficLogCap {
		evts = evts[len(evts)-trafficLogCap:]
	}

	out, err := json.Marshal(evts)
	if err != nil {
		return
	}
	if err := t.local.Set(trafficLogKey, out); err != nil {
		slog.Warn("failed to append traffic event", "op", op, "err", err)
	}
}

func (t *Tracker) bumpStats(ctx context.Context, productID string, click bool) {
	const op = "Tracker.bumpStats"

	stats, ok := t.store.StatsByProduct(productID)
	if !ok {
		stats = domain.ProductStats{ID: productID}
	}
	if click {
		stats.Clicks++
	} else {
		stats.Views++
		stats.LastViewedAt = time.Now().UTC()
	}

	b, _ := json.Marshal(stats)
	if err := t.store.Update(ctx, domain.CollectionProductStats, b); err != nil {
		slog.Warn("stats not persisted remotely", "op", op,
			"productId", productID, "err", err)
	}
}
