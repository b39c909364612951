package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/postgres"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	labelsTable = "photo_labels"

	labelsPhotoIDColumn    = "photo_id"
	labelsLabelsColumn     = "labels"
	labelsDetectedAtColumn = "detected_at"
)

type PhotoLabelsRepo struct {
	*postgres.Postgres
}

func NewPhotoLabelsRepo(pg *postgres.Postgres) *PhotoLabelsRepo {
	return &PhotoLabelsRepo{pg}
}

// Upsert replaces any earlier detection for the same photo; Kafka may
// redeliver an event.
func (r *PhotoLabelsRepo) Upsert(ctx context.Context, labels *entity.PhotoLabels) error {
	sql, args, err := r.Builder.
		Insert(labelsTable).
		Columns(labelsPhotoIDColumn, labelsLabelsColumn, labelsDetectedAtColumn).
		Values(labels.PhotoID, []byte(labels.Labels), labels.DetectedAt).
		Suffix("ON CONFLICT (" + labelsPhotoIDColumn + ") DO UPDATE SET " +
			labelsLabelsColumn + " = EXCLUDED." + labelsLabelsColumn + ", " +
			labelsDetectedAtColumn + " = EXCLUDED." + labelsDetectedAtColumn).
		ToSql()
	if err != nil {
		return fmt.Errorf("PhotoLabelsRepo - Upsert - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PhotoLabelsRepo - Upsert - executor.Exec: %w", err)
	}

	return nil
}

func (r *PhotoLabelsRepo) GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*entity.PhotoLabels, error) {
	sql, args, err := r.Builder.
		Select(labelsPhotoIDColumn, labelsLabelsColumn, labelsDetectedAtColumn).
		From(labelsTable).
		Where(squirrel.Eq{labelsPhotoIDColumn: photoID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PhotoLabelsRepo - GetByPhotoID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var (
		labels entity.PhotoLabels
		raw    []byte
	)

	err = executor.QueryRow(ctx, sql, args...).Scan(&labels.PhotoID, &raw, &labels.DetectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("PhotoLabelsRepo - GetByPhotoID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("PhotoLabelsRepo - GetByPhotoID - executor.QueryRow.Scan: %w", err)
	}

	labels.Labels = raw

	return &labels, nil
}
