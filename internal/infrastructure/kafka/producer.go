package kafka

import (
	"context"
	"fmt"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/kafka/producer"
	"github.com/segmentio/kafka-go"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

type EventProducer struct {
	*producer.Producer
	topic string
}

func NewEventProducer(producer *producer.Producer, topic string) *EventProducer {
	return &EventProducer{
		Producer: producer,
		topic:    topic,
	}
}

func (ep *EventProducer) SendEvents(ctx context.Context, events []*entity.OutboxEvent) error {
	msgs := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		msgs = append(msgs, kafka.Message{
			Topic: ep.topic,
			Key:   []byte(event.AggregateID.String()),
			Value: event.Payload,
			Headers: []kafka.Header{
				{Key: headerEventID, Value: []byte(event.ID.String())},
				{Key: headerEventType, Value: []byte(event.Type)},
			},
		})
	}

	if len(msgs) == 0 {
		return nil
	}

	err := ep.Writer.WriteMessages(ctx, msgs...)
	if err != nil {
		return fmt.Errorf("EventProducer - SendEvents - ep.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()
	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
