// Package analytics provides best-effort recording of user-action events and
// the dashboard feed over them.
//
// Recording is asynchronous: Record enqueues and returns immediately, a
// single worker goroutine drains the queue into the store. A full queue or a
// failed insert loses the event and logs a warning; it never fails or delays
// the mutation that produced it.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/linkmark-backend/internal/domain"
)

type eventRepo interface {
	Create(ctx context.Context, event *domain.AnalyticsEvent) error
}

// Recorder writes analytics events through a buffered queue.
type Recorder struct {
	repo         eventRepo
	log          *slog.Logger
	queue        chan domain.AnalyticsEvent
	writeTimeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
}

// NewRecorder creates a Recorder and starts its worker goroutine.
// queueSize bounds the number of pending events; writeTimeout bounds each
// store insert.
func NewRecorder(log *slog.Logger, repo eventRepo, queueSize int, writeTimeout time.Duration) *Recorder {
	r := &Recorder{
		repo:         repo,
		log:          log.With("service", "analytics"),
		queue:        make(chan domain.AnalyticsEvent, queueSize),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
	go r.worker()
	return r
}

// Record enqueues one event. Never blocks: when the queue is full the event
// is dropped with a warning.
func (r *Recorder) Record(ctx context.Context, userID, bookmarkID uuid.UUID, action domain.EventAction) {
	event := domain.AnalyticsEvent{
		UserID:     userID,
		BookmarkID: bookmarkID,
		Action:     action,
	}

	select {
	case r.queue <- event:
	default:
		r.log.WarnContext(ctx, "analytics queue full, event dropped",
			slog.String("user_id", userID.String()),
			slog.String("bookmark_id", bookmarkID.String()),
			slog.String("action", string(action)),
		)
	}
}

// Close stops accepting events and drains what is already queued. Safe to
// call more than once.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.queue)
		<-r.done
	})
}

func (r *Recorder) worker() {
	defer close(r.done)

	for event := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
		err := r.repo.Create(ctx, &event)
		cancel()

		if err != nil {
			r.log.Warn("analytics event write failed",
				slog.String("user_id", event.UserID.String()),
				slog.String("bookmark_id", event.BookmarkID.String()),
				slog.String("action", string(event.Action)),
				slog.String("error", err.Error()),
			)
		}
	}
}
