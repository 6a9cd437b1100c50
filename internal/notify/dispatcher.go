// Package notify turns committed state changes into email intents and
// delivers them in the background.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Recorder receives per-event delivery outcomes.
type Recorder interface {
	Notification(kind, result string)
}

// Notifier is what domain services depend on.
type Notifier interface {
	Notify(e Event)
}

type Options struct {
	Workers   int
	QueueSize int
	Recorder  Recorder
}

// Dispatcher is a bounded queue drained by a fixed pool of workers. Notify
// never blocks: a full or closed queue drops the event.
type Dispatcher struct {
	composer Composer
	mailer   Mailer
	recorder Recorder
	workers  int

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	wg     sync.WaitGroup
}

func NewDispatcher(composer Composer, mailer Mailer, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}

	return &Dispatcher{
		composer: composer,
		mailer:   mailer,
		recorder: opts.Recorder,
		workers:  opts.Workers,
		queue:    make(chan Event, opts.QueueSize),
	}
}

// Start launches the workers. Call it once.
func (d *Dispatcher) Start() {
	for range d.workers {
		d.wg.Go(d.run)
	}
}

func (d *Dispatcher) Notify(e Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("notification dropped, dispatcher closed", "kind", e.Kind)
		d.record(e.Kind, "dropped")

		return
	}

	select {
	case d.queue <- e:
	default:
		slog.Warn("notification dropped, queue full", "kind", e.Kind)
		d.record(e.Kind, "dropped")
	}
}

// Close stops accepting events and waits for queued ones to be delivered or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	for e := range d.queue {
		d.deliver(context.Background(), e)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, e Event) {
	msgs, err := d.composer.Compose(e)
	if err != nil {
		slog.Error("failed to compose notification", "kind", e.Kind, "error", err)
		d.record(e.Kind, "failed")

		return
	}

	result := "sent"

	for _, msg := range msgs {
		if err := d.mailer.Send(ctx, msg); err != nil {
			slog.Error("failed to send notification", "kind", e.Kind, "to", msg.To, "error", err)

			result = "failed"
		}
	}

	d.record(e.Kind, result)
}

func (d *Dispatcher) record(kind Kind, result string) {
	if d.recorder != nil {
		d.recorder.Notification(string(kind), result)
	}
}
