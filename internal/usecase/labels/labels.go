package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/google/uuid"
)

type LabelsUseCase struct {
	detector   repo.LabelDetectorWebAPI
	labelsRepo repo.PhotoLabelsRepo
}

func New(detector repo.LabelDetectorWebAPI, labelsRepo repo.PhotoLabelsRepo) *LabelsUseCase {
	return &LabelsUseCase{
		detector:   detector,
		labelsRepo: labelsRepo,
	}
}

// Detect returns the detector output for imageURL unchanged.
func (uc *LabelsUseCase) Detect(ctx context.Context, imageURL string) ([]byte, error) {
	out, err := uc.detector.Detect(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("LabelsUseCase - Detect - uc.detector.Detect: %w", err)
	}

	return out, nil
}

// LabelPhoto detects labels for a finalized photo and stores them.
func (uc *LabelsUseCase) LabelPhoto(ctx context.Context, event dto.PhotoFinalized) error {
	id, err := uuid.Parse(event.ID)
	if err != nil {
		return fmt.Errorf("LabelsUseCase - LabelPhoto - uuid.Parse: %w", errs.ErrInvalidPayload)
	}
	if event.ImageURL == "" {
		return fmt.Errorf("LabelsUseCase - LabelPhoto - empty image url: %w", errs.ErrInvalidPayload)
	}

	out, err := uc.detector.Detect(ctx, event.ImageURL)
	if err != nil {
		return fmt.Errorf("LabelsUseCase - LabelPhoto - uc.detector.Detect: %w", err)
	}

	err = uc.labelsRepo.Upsert(ctx, &entity.PhotoLabels{
		PhotoID:    id,
		Labels:     out,
		DetectedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("LabelsUseCase - LabelPhoto - uc.labelsRepo.Upsert: %w", err)
	}

	return nil
}

func (uc *LabelsUseCase) Labels(ctx context.Context, photoID uuid.UUID) (*entity.PhotoLabels, error) {
	l, err := uc.labelsRepo.GetByPhotoID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("LabelsUseCase - Labels - uc.labelsRepo.GetByPhotoID: %w", err)
	}

	return l, nil
}
