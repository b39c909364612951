package repo

import (
	"context"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/google/uuid"
)

type (
	PhotoRepo interface {
		Create(ctx context.Context, photo *entity.Photo) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
		Finalize(ctx context.Context, id uuid.UUID, imageURL string, width, height int) (*entity.Photo, error)
	}

	PhotoLabelsRepo interface {
		Upsert(ctx context.Context, labels *entity.PhotoLabels) error
		GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*entity.PhotoLabels, error)
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context, olderThan time.Time) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}

	// ObjectRepo stores blobs with public-read visibility.
	ObjectRepo interface {
		UploadPublic(ctx context.Context, key string, data []byte, contentType string) (string, error)
	}

	TagDirRepo interface {
		ListTags(ctx context.Context) ([]string, error)
		ListFiles(ctx context.Context, tag string) ([]string, error)
	}

	TallyRepo interface {
		Load(ctx context.Context) (map[string]int, error)
		Save(ctx context.Context, tally map[string]int) error
	}

	ChangelogRepo interface {
		Load(ctx context.Context) (*entity.Changelog, error)
		Save(ctx context.Context, changelog *entity.Changelog) error
	}

	PhotoSearchWebAPI interface {
		SearchPhotos(ctx context.Context, labels []string) ([]entity.AggregatedPhoto, error)
	}

	LabelDetectorWebAPI interface {
		Detect(ctx context.Context, imageURL string) ([]byte, error)
	}
)
