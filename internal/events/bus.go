package events

import (
	"context"
	"sync"
	"time"

	"prompthub/pkg/logger"
)

// Event types published by the services.
const (
	TypeCommentCreated = "comment.created"
	TypePromptLiked    = "prompt.liked"
	TypeUserFollowed   = "user.followed"
)

// Event carries what a subscriber needs to act on a user action. Fields not
// relevant to a given type stay zero.
type Event struct {
	Type        string
	ActorID     string // user who performed the action
	RecipientID string // user affected by it
	PromptID    int64
	CommentID   int64
	Content     string
	Link        string
}

// Handler reacts to a published event. Errors are logged by the bus and never
// reach the publisher: event delivery is a best-effort side effect of the
// primary write.
type Handler func(ctx context.Context, ev Event) error

// Bus is a small in-process publish/subscribe dispatcher. Publish runs
// handlers on their own goroutine so a slow or failing subscriber cannot
// block or abort the request that triggered the event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler

	// sync makes Publish dispatch inline, for deterministic tests.
	sync    bool
	timeout time.Duration
	wg      sync.WaitGroup
}

type Option func(*Bus)

// WithSyncDispatch runs handlers inline on Publish.
func WithSyncDispatch() Option {
	return func(b *Bus) { b.sync = true }
}

// WithDispatchTimeout bounds how long a single handler may run.
func WithDispatchTimeout(d time.Duration) Option {
	return func(b *Bus) { b.timeout = d }
}

func NewBus(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for the given event type.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish delivers the event to every subscriber of its type.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := b.handlers[ev.Type]
	b.mu.RUnlock()

	for _, h := range handlers {
		if b.sync {
			b.dispatch(h, ev)
			continue
		}
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			b.dispatch(h, ev)
		}(h)
	}
}

func (b *Bus) dispatch(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("event", ev.Type).
				Msg("event handler panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := h(ctx, ev); err != nil {
		logger.Warn().
			Err(err).
			Str("event", ev.Type).
			Str("actor", ev.ActorID).
			Msg("event handler failed")
	}
}

// Wait blocks until all in-flight async dispatches finish. Used on shutdown.
func (b *Bus) Wait() {
	b.wg.Wait()
}
