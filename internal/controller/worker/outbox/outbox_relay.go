package outbox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/infrastructure"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
)

type Settings struct {
	PollInterval        time.Duration
	CleanupInterval     time.Duration
	MarkFailedInterval  time.Duration
	ProcessBatchTimeout time.Duration
	BatchSize           int
	MaxRetries          int
}

// OutboxRelay publishes photo outbox events to Kafka. Three loops run
// on their own tickers: publish, give up on exhausted events, cleanup.
type OutboxRelay struct {
	outbox usecase.OutboxUseCase
	es     infrastructure.EventsSender
	logger logger.Interface
	s      Settings

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(outbox usecase.OutboxUseCase, es infrastructure.EventsSender, l logger.Interface, s Settings) *OutboxRelay {
	return &OutboxRelay{
		outbox: outbox,
		es:     es,
		logger: l,
		s:      s,
	}
}

func (r *OutboxRelay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("OutboxRelay - Start: %w", errs.ErrAlreadyStarted)
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	r.every(r.s.PollInterval, r.publish)
	r.every(r.s.MarkFailedInterval, r.markFailed)
	r.every(r.s.CleanupInterval, r.cleanup)

	return nil
}

func (r *OutboxRelay) publish() {
	ctx, cancel := context.WithTimeout(r.ctx, r.s.ProcessBatchTimeout)
	defer cancel()

	r.publishBatch(ctx)
}

// publishBatch sends one claimed batch. A failed send puts the whole
// batch back to pending with its retry count bumped.
func (r *OutboxRelay) publishBatch(ctx context.Context) {
	events, err := r.outbox.ClaimPendingEvents(ctx, r.s.MaxRetries, r.s.BatchSize)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - publishBatch - r.outbox.ClaimPendingEvents")

		return
	}
	if len(events) == 0 {
		return
	}

	// status updates must land even if the batch deadline has passed
	statusCtx := context.WithoutCancel(ctx)

	if err = r.es.SendEvents(ctx, events); err != nil {
		r.logger.Error(err, "OutboxRelay - publishBatch - r.es.SendEvents")

		if err = r.outbox.IncrementRetryCountBatch(statusCtx, events); err != nil {
			r.logger.Error(err, "OutboxRelay - publishBatch - r.outbox.IncrementRetryCountBatch")
		}

		return
	}

	if err = r.outbox.MarkAsProcessedBatch(statusCtx, events); err != nil {
		r.logger.Error(err, "OutboxRelay - publishBatch - r.outbox.MarkAsProcessedBatch")
	}
}

func (r *OutboxRelay) markFailed() {
	if err := r.outbox.MarkMaxRetriesAsFailed(r.ctx, r.s.MaxRetries); err != nil {
		r.logger.Error(err, "OutboxRelay - markFailed - r.outbox.MarkMaxRetriesAsFailed")
	}
}

func (r *OutboxRelay) cleanup() {
	if err := r.outbox.CleanupOutbox(r.ctx); err != nil {
		r.logger.Error(err, "OutboxRelay - cleanup - r.outbox.CleanupOutbox")
	}
}

func (r *OutboxRelay) every(interval time.Duration, task func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

// Shutdown stops the loops and closes the sender once they have exited.
func (r *OutboxRelay) Shutdown(ctx context.Context) error {
	if !r.started.Load() || r.cancel == nil {
		return nil
	}

	r.cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		r.wg.Wait()
		if err := r.es.Close(); err != nil {
			r.logger.Error(err, "OutboxRelay - Shutdown - r.es.Close")
		}
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("OutboxRelay - Shutdown: %w", ctx.Err())
	}
}
