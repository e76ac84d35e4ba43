package main

import (
	"context"
	"log"

	"stablecoin-core/internal/domain"
	"stablecoin-core/internal/engine"
	chstore "stablecoin-core/internal/storage/clickhouse"
)

// fanout delivers each committed event to every publisher.
type fanout []engine.EventPublisher

func newFanout(pubs ...engine.EventPublisher) fanout {
	return fanout(pubs)
}

func (f fanout) Publish(e *domain.Event) {
	for _, p := range f {
		p.Publish(e)
	}
}

// sinkPublisher copies committed events into the ClickHouse analytics table
// off the request path. Writes are best effort; Postgres holds the
// authoritative log.
type sinkPublisher struct {
	events chan *domain.Event
}

func newSinkPublisher(ctx context.Context, sink *chstore.EventStore, logger *log.Logger) *sinkPublisher {
	p := &sinkPublisher{events: make(chan *domain.Event, 1024)}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-p.events:
				if err := sink.Append(ctx, e); err != nil {
					logger.Printf("append %s event: %v", e.Type, err)
				}
			}
		}
	}()
	return p
}

func (p *sinkPublisher) Publish(e *domain.Event) {
	select {
	case p.events <- e:
	default:
		// Full buffer drops the analytics copy rather than blocking commits.
	}
}
