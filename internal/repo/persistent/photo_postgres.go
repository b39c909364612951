package persistent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/postgres"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	photosTable = "photos"

	// Columns
	idColumn          = "id"
	ownerIDColumn     = "owner_id"
	referenceIDColumn = "reference_id"
	tagListColumn     = "tag_list"
	imageURLColumn    = "image_url"
	widthColumn       = "width"
	heightColumn      = "height"
	createdAtColumn   = "created_at"
	updatedAtColumn   = "updated_at"
)

var photoColumns = []string{
	idColumn,
	ownerIDColumn,
	referenceIDColumn,
	tagListColumn,
	imageURLColumn,
	widthColumn,
	heightColumn,
	createdAtColumn,
	updatedAtColumn,
}

type PhotoRepo struct {
	*postgres.Postgres
}

func NewPhotoRepo(pg *postgres.Postgres) *PhotoRepo {
	return &PhotoRepo{pg}
}

func (r *PhotoRepo) Create(ctx context.Context, photo *entity.Photo) error {
	tags := photo.TagList
	if tags == nil {
		tags = []string{}
	}

	sql, args, err := r.Builder.
		Insert(photosTable).
		Columns(
			idColumn,
			ownerIDColumn,
			referenceIDColumn,
			tagListColumn,
			createdAtColumn,
			updatedAtColumn,
		).
		Values(
			photo.ID,
			photo.OwnerID,
			photo.ReferenceID,
			tags,
			photo.CreatedAt,
			photo.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("PhotoRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PhotoRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *PhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	sql, args, err := r.Builder.
		Select(photoColumns...).
		From(photosTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PhotoRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	photo, err := scanPhoto(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("PhotoRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("PhotoRepo - GetByID - scanPhoto: %w", err)
	}

	return photo, nil
}

// Finalize sets the image URL and dimensions and returns the updated row.
func (r *PhotoRepo) Finalize(ctx context.Context, id uuid.UUID, imageURL string, width, height int) (*entity.Photo, error) {
	sql, args, err := r.Builder.
		Update(photosTable).
		Set(imageURLColumn, imageURL).
		Set(widthColumn, width).
		Set(heightColumn, height).
		Set(updatedAtColumn, time.Now()).
		Where(squirrel.Eq{idColumn: id}).
		Suffix("RETURNING " + strings.Join(photoColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PhotoRepo - Finalize - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	photo, err := scanPhoto(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("PhotoRepo - Finalize: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("PhotoRepo - Finalize - scanPhoto: %w", err)
	}

	return photo, nil
}

func scanPhoto(row pgx.Row) (*entity.Photo, error) {
	var photo entity.Photo

	err := row.Scan(
		&photo.ID,
		&photo.OwnerID,
		&photo.ReferenceID,
		&photo.TagList,
		&photo.ImageURL,
		&photo.Width,
		&photo.Height,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &photo, nil
}
