package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// DefaultResilientConfig returns the retry settings used in production.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
		DeadLetterPath: "events.deadletter.jsonl",
	}
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter
// queuing. State mutations are already committed when events are published, so
// a delivery failure must never surface to the triggering operation.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects file writes
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// PublishWithRetry attempts to publish an event. If the first attempt fails
// the retry loop continues in the background; the caller never blocks on it.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn("Failed to publish event, initiating async retry",
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event)
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	// Detached context: the original request context may already be cancelled
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i)) // linear backoff

		if err := p.inner.Publish(ctx, event); err == nil {
			log.Info("Successfully published event after retry",
				"event_type", event.Type,
				"attempt", i)
			return
		} else {
			log.Warn("Retry failed",
				"event_type", event.Type,
				"attempt", i,
				"error", err)
		}
	}

	p.writeToDeadLetter(event)
}

func (p *ResilientPublisher) writeToDeadLetter(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(context.Background())

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Error("Failed to open dead letter file", "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	line, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal dead letter event", "error", err, "event_type", event.Type)
		return
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Error("Failed to write dead letter event", "error", err, "event_type", event.Type)
		return
	}

	log.Warn("Event written to dead letter queue", "event_type", event.Type, "path", p.config.DeadLetterPath)
}

// Shutdown waits for in-flight retry loops to drain.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
