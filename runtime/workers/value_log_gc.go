package workers

import (
	"chat-relay/errors"
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	defaultGCInterval = 5 * time.Minute
	gcDiscardRatio    = 0.5

	gcOutcomeRewritten = "rewritten"
	gcOutcomeNoop      = "noop"
	gcOutcomeFailed    = "failed"
)

type GCObserver interface {
	ValueLogGC(outcome string)
}

// ValueLogGCWorker reclaims the space of overwritten and deleted values.
type ValueLogGCWorker struct {
	log      *slog.Logger
	db       *badger.DB
	interval time.Duration
	observer GCObserver
}

func NewValueLogGCWorker(log *slog.Logger, db *badger.DB, interval time.Duration, observer GCObserver) *ValueLogGCWorker {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &ValueLogGCWorker{log: log, db: db, interval: interval, observer: observer}
}

func (w *ValueLogGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.collect(ctx)
		}
	}
}

// collect keeps rewriting value log files while each pass frees one.
func (w *ValueLogGCWorker) collect(ctx context.Context) {
	rewritten := 0
	for ctx.Err() == nil {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewritten++
			w.observer.ValueLogGC(gcOutcomeRewritten)
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			if rewritten == 0 {
				w.observer.ValueLogGC(gcOutcomeNoop)
			}
			break
		}
		w.observer.ValueLogGC(gcOutcomeFailed)
		w.log.Warn("Value log GC failed", "error", err)
		break
	}
	if rewritten > 0 {
		w.log.Info("Value log GC done", "files_rewritten", rewritten)
	}
}
