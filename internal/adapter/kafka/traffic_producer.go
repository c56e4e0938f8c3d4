package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
)

var _ port.TrafficProducer = (*TrafficProducer)(nil)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// TrafficProducer publishes traffic events to the analytics topic as
// JSON records keyed by visitor id.
type TrafficProducer struct {
	cl ProducerClient
}

func NewTrafficProducer(
	ctx context.Context,
	seedBrokers []string,
	topic string,
	tlsConfig *tls.Config,
) (TrafficProducer, error) {
	const op = "NewTrafficProducer"

	opts := []kgo.Opt{
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return TrafficProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cl.Ping(ctx); err != nil {
		return TrafficProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	return TrafficProducer{cl}, nil
}

func (p TrafficProducer) ProduceEvent(
	ctx context.Context, evt domain.TrafficEvent,
) error {
	const op = "TrafficProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{Key: []byte(evt.VisitorID), Value: v}
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p TrafficProducer) Close() {
	const op = "TrafficProducer.Close"
	log := slog.With("op", op)

	log.Info("closing traffic producer...")
	p.cl.Close()
	log.Info("traffic producer is closed")
}
