package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/google/uuid"
)

type OutboxUseCase struct {
	outboxRepo repo.OutboxRepo
	transactor repo.Transactor
	retention  time.Duration

	logger logger.Interface
}

func New(
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	retention time.Duration,
	l logger.Interface,
) *OutboxUseCase {
	return &OutboxUseCase{
		outboxRepo: outboxRepo,
		transactor: transactor,
		retention:  retention,
		logger:     l,
	}
}

// ClaimPendingEvents locks pending events and marks them processing in one
// transaction, so concurrent relays never pick the same rows.
func (uc *OutboxUseCase) ClaimPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	var events []*entity.OutboxEvent

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		events, err = uc.outboxRepo.GetPendingEvents(ctx, maxRetries, limit)
		if err != nil {
			return fmt.Errorf("uc.outboxRepo.GetPendingEvents: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		err = uc.outboxRepo.MarkAsProcessingBatch(ctx, ids(events))
		if err != nil {
			return fmt.Errorf("uc.outboxRepo.MarkAsProcessingBatch: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("OutboxUseCase - ClaimPendingEvents - %w", err)
	}

	for _, e := range events {
		e.Status = entity.Processing
	}

	return events, nil
}

func (uc *OutboxUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, ids(events))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

// IncrementRetryCountBatch returns the events to pending with one more retry.
func (uc *OutboxUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, ids(events))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("OutboxUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx, time.Now().Add(-uc.retention))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old outbox events, count = %d", count)
	}

	return nil
}

func ids(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))
	for _, e := range events {
		IDs = append(IDs, e.ID)
	}

	return IDs
}
