package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/infrastructure"
	kafkapc "github.com/baiqizhang/CopyCat-Server/internal/infrastructure/kafka"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

const _readErrorBackoff = time.Second

// KafkaController consumes photo.finalized events and labels the photos.
type KafkaController struct {
	labels usecase.LabelsUseCase
	er     infrastructure.EventsReceiver
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	labels usecase.LabelsUseCase,
	er infrastructure.EventsReceiver,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *KafkaController {
	if workers < 1 {
		workers = 1
	}

	return &KafkaController{
		labels:         labels,
		er:             er,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController - Start: %w", errs.ErrAlreadyStarted)
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			event, err := c.er.ReadEvent(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				c.logger.Error(err, "KafkaController - Start - c.er.ReadEvent")

				select {
				case <-time.After(_readErrorBackoff):
					continue
				case <-c.ctx.Done():
					return
				}
			}

			select {
			case tasks <- event:
			case <-c.ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (c *KafkaController) processEvent(ctx context.Context, event kafka.Message) error {
	if t := kafkapc.EventType(event); t != entity.EventPhotoFinalized {
		c.logger.Debug("KafkaController - processEvent - skipping event type %q", t)

		return nil
	}

	var payload dto.PhotoFinalized
	if err := json.Unmarshal(event.Value, &payload); err != nil {
		return fmt.Errorf("KafkaController - processEvent - json.Unmarshal: %w: %v", errs.ErrInvalidPayload, err)
	}

	if err := c.labels.LabelPhoto(ctx, payload); err != nil {
		return fmt.Errorf("KafkaController - processEvent - c.labels.LabelPhoto: %w", err)
	}

	return nil
}

func (c *KafkaController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for event := range tasks {
		c.handle(event)
	}
}

func (c *KafkaController) handle(event kafka.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController - handle - panic")
		}
	}()

	processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
	err := c.processEvent(processCtx, event)
	processCancel()

	// malformed events are committed so they are not redelivered
	if err != nil {
		c.logger.Error(err, "KafkaController - handle - c.processEvent")

		if !errors.Is(err, errs.ErrInvalidPayload) {
			return
		}
	}

	commitCtx, commitCancel := context.WithTimeout(context.WithoutCancel(c.ctx), c.commitTimeout)
	err = c.er.CommitEvent(commitCtx, event)
	commitCancel()
	if err != nil {
		c.logger.Error(err, "KafkaController - handle - c.er.CommitEvent")
	}
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		if err := c.er.Close(); err != nil {
			c.logger.Error(err, "KafkaController - Shutdown - c.er.Close")
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("KafkaController - Shutdown: %w", ctx.Err())
	}
}
