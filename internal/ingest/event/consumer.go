package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.UploadActivityEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// ActivityConsumer drains the bus and hands every finished-upload event to
// the configured handler, typically the activity trail store.
type ActivityConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewActivityConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *ActivityConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &ActivityConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *ActivityConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *ActivityConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *ActivityConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *ActivityConsumer) processEvent(event entity.UploadActivityEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate upload activity event", "event_id", event.EventID, "upload_id", event.UploadID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to record upload activity after retries", "event_id", event.EventID, "upload_id", event.UploadID, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// LogHandler is the fallback when no activity store is configured. It only
// writes the event to the log so uploads still leave a trace.
type LogHandler struct{}

func (LogHandler) Handle(ctx context.Context, event entity.UploadActivityEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	slog.Info("upload finished",
		"event_id", event.EventID,
		"session_id", event.SessionID,
		"upload_id", event.UploadID,
		"tool", event.Tool,
		"status", event.Status,
		"rows", event.RowCount,
	)
	return nil
}
