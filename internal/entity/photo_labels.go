package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PhotoLabels holds the raw detector output for a finalized photo.
type PhotoLabels struct {
	PhotoID    uuid.UUID       `json:"photoId"`
	Labels     json.RawMessage `json:"labels"`
	DetectedAt time.Time       `json:"detectedAt"`
}
