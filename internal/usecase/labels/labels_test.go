package labels

import (
	"context"
	"errors"
	"testing"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type detectorStub struct {
	url string
	out []byte
	err error
}

func (d *detectorStub) Detect(_ context.Context, imageURL string) ([]byte, error) {
	d.url = imageURL

	return d.out, d.err
}

type labelsRepoStub struct {
	stored map[uuid.UUID]*entity.PhotoLabels
}

func (r *labelsRepoStub) Upsert(_ context.Context, l *entity.PhotoLabels) error {
	r.stored[l.PhotoID] = l

	return nil
}

func (r *labelsRepoStub) GetByPhotoID(_ context.Context, id uuid.UUID) (*entity.PhotoLabels, error) {
	l, ok := r.stored[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}

	return l, nil
}

func TestLabelPhoto_StoresDetectorOutput(t *testing.T) {
	det := &detectorStub{out: []byte(`[{"description":"cat","score":0.98}]`)}
	store := &labelsRepoStub{stored: map[uuid.UUID]*entity.PhotoLabels{}}
	uc := New(det, store)

	id := uuid.New()
	err := uc.LabelPhoto(context.Background(), dto.PhotoFinalized{ID: id.String(), ImageURL: "https://b/k"})
	require.NoError(t, err)
	require.Equal(t, "https://b/k", det.url)

	got, err := uc.Labels(context.Background(), id)
	require.NoError(t, err)
	require.JSONEq(t, `[{"description":"cat","score":0.98}]`, string(got.Labels))
	require.False(t, got.DetectedAt.IsZero())
}

func TestLabelPhoto_InvalidPayload(t *testing.T) {
	uc := New(&detectorStub{}, &labelsRepoStub{stored: map[uuid.UUID]*entity.PhotoLabels{}})

	err := uc.LabelPhoto(context.Background(), dto.PhotoFinalized{ID: "nope", ImageURL: "u"})
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	err = uc.LabelPhoto(context.Background(), dto.PhotoFinalized{ID: uuid.NewString()})
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func TestDetect_PassesThrough(t *testing.T) {
	boom := errors.New("script failed")
	uc := New(&detectorStub{err: boom}, &labelsRepoStub{})

	_, err := uc.Detect(context.Background(), "u")
	require.ErrorIs(t, err, boom)
}

func TestLabels_NotFound(t *testing.T) {
	uc := New(&detectorStub{}, &labelsRepoStub{stored: map[uuid.UUID]*entity.PhotoLabels{}})

	_, err := uc.Labels(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}
