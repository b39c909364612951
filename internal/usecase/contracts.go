package usecase

import (
	"context"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/google/uuid"
)

type (
	PhotoUseCase interface {
		Upload(ctx context.Context, upload dto.UploadPhoto) (*entity.Photo, error)
		Get(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	}

	SearchUseCase interface {
		Search(ctx context.Context, labels []string) ([]entity.AggregatedPhoto, error)
		RebuildTags(ctx context.Context) error
		Tags() []string
	}

	SearchLogUseCase interface {
		Record(ctx context.Context, keyword string) error
	}

	ChangelogUseCase interface {
		WhatsNew(version int, lang string) dto.WhatsNew
		Append(ctx context.Context, cn, eng string) (int, error)
		Reset(ctx context.Context) error
	}

	LabelsUseCase interface {
		Detect(ctx context.Context, imageURL string) ([]byte, error)
		LabelPhoto(ctx context.Context, event dto.PhotoFinalized) error
		Labels(ctx context.Context, photoID uuid.UUID) (*entity.PhotoLabels, error)
	}

	OutboxUseCase interface {
		ClaimPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)
