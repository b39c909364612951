package photo

import (
	"context"
	"fmt"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/infrastructure"
	"github.com/baiqizhang/CopyCat-Server/internal/infrastructure/processor"
	"github.com/baiqizhang/CopyCat-Server/internal/metrics"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PhotoUseCase struct {
	photoRepo  repo.PhotoRepo
	objectRepo repo.ObjectRepo
	outboxRepo repo.OutboxRepo
	transactor repo.Transactor
	processor  infrastructure.ImageProcessor
}

// New builds the use case. outboxRepo may be nil, in which case no
// photo.finalized events are written.
func New(
	photoRepo repo.PhotoRepo,
	objectRepo repo.ObjectRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	p infrastructure.ImageProcessor,
) *PhotoUseCase {
	return &PhotoUseCase{
		photoRepo:  photoRepo,
		objectRepo: objectRepo,
		outboxRepo: outboxRepo,
		transactor: transactor,
		processor:  p,
	}
}

// Upload runs two branches over the same decoded bytes and joins them
// before the single finalize update:
//
//	store:   create empty record -> compress -> upload public object
//	measure: width and height of the compressed image
//
// A failed branch leaves whatever the other one already wrote.
func (uc *PhotoUseCase) Upload(ctx context.Context, upload dto.UploadPhoto) (_ *entity.Photo, err error) {
	start := time.Now()
	defer func() { metrics.ObservePhotoUpload(start, err) }()

	var (
		photo         *entity.Photo
		imageURL      string
		width, height int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		photo, imageURL, err = uc.store(gctx, upload)

		return err
	})

	g.Go(func() error {
		var err error
		width, height, err = uc.processor.Dimensions(gctx, upload.Data)
		if err != nil {
			return fmt.Errorf("uc.processor.Dimensions: %w", err)
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("PhotoUseCase - Upload - %w", err)
	}

	finalized, err := uc.finalize(ctx, photo.ID, imageURL, width, height)
	if err != nil {
		return nil, fmt.Errorf("PhotoUseCase - Upload - uc.finalize: %w", err)
	}

	return finalized, nil
}

func (uc *PhotoUseCase) store(ctx context.Context, upload dto.UploadPhoto) (*entity.Photo, string, error) {
	now := time.Now().UTC()
	photo := &entity.Photo{
		ID:          uuid.New(),
		OwnerID:     upload.OwnerID,
		ReferenceID: upload.ReferenceID,
		TagList:     upload.TagList,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if photo.TagList == nil {
		photo.TagList = []string{}
	}

	if err := uc.photoRepo.Create(ctx, photo); err != nil {
		return nil, "", fmt.Errorf("uc.photoRepo.Create: %w", err)
	}

	compressed, err := uc.processor.Compress(ctx, upload.Data)
	if err != nil {
		return nil, "", fmt.Errorf("uc.processor.Compress: %w", err)
	}

	url, err := uc.objectRepo.UploadPublic(ctx, photo.ID.String(), compressed, processor.ContentType)
	if err != nil {
		return nil, "", fmt.Errorf("uc.objectRepo.UploadPublic: %w", err)
	}

	return photo, url, nil
}

func (uc *PhotoUseCase) finalize(ctx context.Context, id uuid.UUID, imageURL string, width, height int) (*entity.Photo, error) {
	var photo *entity.Photo

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		photo, err = uc.photoRepo.Finalize(ctx, id, imageURL, width, height)
		if err != nil {
			return fmt.Errorf("uc.photoRepo.Finalize: %w", err)
		}

		if uc.outboxRepo == nil {
			return nil
		}

		event, err := finalizedEvent(photo)
		if err != nil {
			return err
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return photo, nil
}

func (uc *PhotoUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	photo, err := uc.photoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("PhotoUseCase - Get - uc.photoRepo.GetByID: %w", err)
	}

	return photo, nil
}
