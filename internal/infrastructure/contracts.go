package infrastructure

import (
	"context"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/segmentio/kafka-go"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	EventsReceiver interface {
		ReadEvent(ctx context.Context) (kafka.Message, error)
		CommitEvent(ctx context.Context, event kafka.Message) error
		Close() error
	}

	ImageProcessor interface {
		Compress(ctx context.Context, data []byte) ([]byte, error)
		Dimensions(ctx context.Context, data []byte) (int, int, error)
	}
)
