package photo

import (
	"context"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type photoRepoMock struct{ mock.Mock }

func (m *photoRepoMock) Create(ctx context.Context, photo *entity.Photo) error {
	return m.Called(ctx, photo).Error(0)
}

func (m *photoRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Photo)

	return p, args.Error(1)
}

func (m *photoRepoMock) Finalize(ctx context.Context, id uuid.UUID, imageURL string, width, height int) (*entity.Photo, error) {
	args := m.Called(ctx, id, imageURL, width, height)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID, string, int, int) *entity.Photo); ok {
		return fn(ctx, id, imageURL, width, height), args.Error(1)
	}
	p, _ := args.Get(0).(*entity.Photo)

	return p, args.Error(1)
}

type objectRepoMock struct{ mock.Mock }

func (m *objectRepoMock) UploadPublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)

	return args.String(0), args.Error(1)
}

type outboxRepoMock struct{ mock.Mock }

func (m *outboxRepoMock) Create(ctx context.Context, event *entity.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *outboxRepoMock) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	args := m.Called(ctx, maxRetries, limit)
	e, _ := args.Get(0).([]*entity.OutboxEvent)

	return e, args.Error(1)
}

func (m *outboxRepoMock) MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *outboxRepoMock) MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *outboxRepoMock) IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *outboxRepoMock) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return m.Called(ctx, maxRetries).Error(0)
}

func (m *outboxRepoMock) DeleteOldProcessedAndFailed(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)

	return args.Get(0).(int64), args.Error(1)
}

type processorMock struct{ mock.Mock }

func (m *processorMock) Compress(ctx context.Context, data []byte) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *processorMock) Dimensions(ctx context.Context, data []byte) (int, int, error) {
	args := m.Called(ctx, data)

	return args.Int(0), args.Int(1), args.Error(2)
}

type transactorStub struct {
	calls int
}

func (t *transactorStub) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	t.calls++

	return f(ctx)
}
