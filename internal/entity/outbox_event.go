package entity

import (
	"time"

	"github.com/google/uuid"
)

const EventPhotoFinalized = "photo.finalized"

type OutboxEvent struct {
	ID          uuid.UUID    `json:"id"`
	AggregateID uuid.UUID    `json:"aggregate_id"`
	Type        string       `json:"type"`
	Payload     []byte       `json:"payload"`
	Status      OutboxStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
	RetryCount  int          `json:"retry_count"`
}
