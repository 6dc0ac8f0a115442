package messaging

import (
	"context"
	"log/slog"
	"time"
)

// AsyncPublisher decouples publishing from the producing code path: events
// are queued and published in order by a single background goroutine, so a
// slow broker never blocks the producer. A full queue drops the newest
// event with a log entry instead of blocking.
type AsyncPublisher struct {
	publisher Publisher
	timeout   time.Duration
	logger    *slog.Logger
	queue     chan Event
	done      chan struct{}
}

// NewAsyncPublisher starts the publishing goroutine. timeout bounds each
// individual publish call.
func NewAsyncPublisher(publisher Publisher, timeout time.Duration, queueSize int, logger *slog.Logger) *AsyncPublisher {
	a := &AsyncPublisher{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}
	go a.loop()
	return a
}

// Enqueue hands an event to the publishing goroutine. Never blocks.
func (a *AsyncPublisher) Enqueue(event Event) {
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("Event dropped, publish queue is full", "subject", event.Subject())
	}
}

// Close stops accepting events and waits until the queue is drained.
func (a *AsyncPublisher) Close() {
	close(a.queue)
	<-a.done
}

func (a *AsyncPublisher) loop() {
	defer close(a.done)
	for event := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.publisher.Publish(ctx, event); err != nil {
			a.logger.Error("Failed to publish event", "subject", event.Subject(), "error", err)
		}
		cancel()
	}
}
