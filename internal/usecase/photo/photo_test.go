package photo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deps struct {
	photos    *photoRepoMock
	objects   *objectRepoMock
	outbox    *outboxRepoMock
	processor *processorMock
	tx        *transactorStub
}

func newDeps() deps {
	return deps{
		photos:    &photoRepoMock{},
		objects:   &objectRepoMock{},
		outbox:    &outboxRepoMock{},
		processor: &processorMock{},
		tx:        &transactorStub{},
	}
}

func finalizedFrom(p *entity.Photo, url string, w, h int) *entity.Photo {
	cp := *p
	cp.ImageURL = &url
	cp.Width = w
	cp.Height = h

	return &cp
}

func TestUpload_FinalizesWithURLAndDimensions(t *testing.T) {
	d := newDeps()
	raw := []byte("raw-image")
	compressed := []byte("compressed")
	owner := "owner-1"

	var created *entity.Photo
	d.photos.On("Create", mock.Anything, mock.AnythingOfType("*entity.Photo")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Photo) }).
		Return(nil)
	d.processor.On("Compress", mock.Anything, raw).Return(compressed, nil)
	d.processor.On("Dimensions", mock.Anything, raw).Return(800, 600, nil)
	d.objects.On("UploadPublic", mock.Anything, mock.AnythingOfType("string"), compressed, "image/jpeg").
		Return("https://bucket/key", nil)
	d.photos.On("Finalize", mock.Anything, mock.AnythingOfType("uuid.UUID"), "https://bucket/key", 800, 600).
		Return(func(_ context.Context, id uuid.UUID, url string, w, h int) *entity.Photo {
			return finalizedFrom(created, url, w, h)
		}, nil)

	var event *entity.OutboxEvent
	d.outbox.On("Create", mock.Anything, mock.AnythingOfType("*entity.OutboxEvent")).
		Run(func(args mock.Arguments) { event = args.Get(1).(*entity.OutboxEvent) }).
		Return(nil)

	uc := New(d.photos, d.objects, d.outbox, d.tx, d.processor)

	photo, err := uc.Upload(context.Background(), dto.UploadPhoto{
		Data:    raw,
		OwnerID: &owner,
		TagList: []string{"cat"},
	})
	require.NoError(t, err)

	require.Equal(t, created.ID, photo.ID)
	require.Equal(t, "https://bucket/key", *photo.ImageURL)
	require.Equal(t, 800, photo.Width)
	require.Equal(t, 600, photo.Height)
	require.Equal(t, &owner, photo.OwnerID)
	require.Equal(t, 1, d.tx.calls)

	d.objects.AssertCalled(t, "UploadPublic", mock.Anything, created.ID.String(), compressed, "image/jpeg")

	require.NotNil(t, event)
	require.Equal(t, entity.EventPhotoFinalized, event.Type)
	require.Equal(t, created.ID, event.AggregateID)
	require.Equal(t, entity.Pending, event.Status)

	var payload dto.PhotoFinalized
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	require.Equal(t, dto.PhotoFinalized{
		ID:       created.ID.String(),
		ImageURL: "https://bucket/key",
		Width:    800,
		Height:   600,
		TagList:  []string{"cat"},
	}, payload)
}

func TestUpload_WithoutOutbox(t *testing.T) {
	d := newDeps()

	var created *entity.Photo
	d.photos.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Photo) }).
		Return(nil)
	d.processor.On("Compress", mock.Anything, mock.Anything).Return([]byte("c"), nil)
	d.processor.On("Dimensions", mock.Anything, mock.Anything).Return(10, 20, nil)
	d.objects.On("UploadPublic", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("u", nil)
	d.photos.On("Finalize", mock.Anything, mock.Anything, "u", 10, 20).
		Return(func(_ context.Context, _ uuid.UUID, url string, w, h int) *entity.Photo {
			return finalizedFrom(created, url, w, h)
		}, nil)

	uc := New(d.photos, d.objects, nil, d.tx, d.processor)

	photo, err := uc.Upload(context.Background(), dto.UploadPhoto{Data: []byte("x")})
	require.NoError(t, err)
	require.Equal(t, []string{}, photo.TagList)
}

func TestUpload_MeasureFailureSkipsFinalize(t *testing.T) {
	d := newDeps()
	boom := errors.New("decode failed")

	d.photos.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.processor.On("Compress", mock.Anything, mock.Anything).Return([]byte("c"), nil).Maybe()
	d.processor.On("Dimensions", mock.Anything, mock.Anything).Return(0, 0, boom)
	d.objects.On("UploadPublic", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("u", nil).Maybe()

	uc := New(d.photos, d.objects, d.outbox, d.tx, d.processor)

	_, err := uc.Upload(context.Background(), dto.UploadPhoto{Data: []byte("x")})
	require.ErrorIs(t, err, boom)
	require.Zero(t, d.tx.calls)
	d.photos.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_StoreFailure(t *testing.T) {
	d := newDeps()
	boom := errors.New("db down")

	d.photos.On("Create", mock.Anything, mock.Anything).Return(boom)
	d.processor.On("Dimensions", mock.Anything, mock.Anything).Return(1, 1, nil).Maybe()

	uc := New(d.photos, d.objects, d.outbox, d.tx, d.processor)

	_, err := uc.Upload(context.Background(), dto.UploadPhoto{Data: []byte("x")})
	require.ErrorIs(t, err, boom)
	d.objects.AssertNotCalled(t, "UploadPublic", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGet(t *testing.T) {
	d := newDeps()
	id := uuid.New()

	d.photos.On("GetByID", mock.Anything, id).Return(nil, errs.ErrRecordNotFound)

	uc := New(d.photos, d.objects, d.outbox, d.tx, d.processor)

	_, err := uc.Get(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestUpload_StoreAndMeasureRunConcurrently(t *testing.T) {
	d := newDeps()
	raw := []byte("raw-image")
	measuring := make(chan struct{})

	d.photos.On("Create", mock.Anything, mock.AnythingOfType("*entity.Photo")).Return(nil)
	d.processor.On("Dimensions", mock.Anything, raw).
		Run(func(mock.Arguments) { close(measuring) }).
		Return(640, 480, nil)

	var overlapped bool
	d.processor.On("Compress", mock.Anything, raw).
		Run(func(mock.Arguments) {
			select {
			case <-measuring:
				overlapped = true
			case <-time.After(2 * time.Second):
			}
		}).
		Return([]byte("compressed"), nil)
	d.objects.On("UploadPublic", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://bucket/key", nil)
	d.photos.On("Finalize", mock.Anything, mock.Anything, "https://bucket/key", 640, 480).
		Return(&entity.Photo{}, nil)

	uc := New(d.photos, d.objects, nil, d.tx, d.processor)

	_, err := uc.Upload(context.Background(), dto.UploadPhoto{Data: raw})
	require.NoError(t, err)
	require.True(t, overlapped, "compress finished before dimensions started")
}
