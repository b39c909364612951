package photo

import (
	"fmt"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func finalizedEvent(photo *entity.Photo) (*entity.OutboxEvent, error) {
	payload := dto.PhotoFinalized{
		ID:       photo.ID.String(),
		ImageURL: *photo.ImageURL,
		Width:    photo.Width,
		Height:   photo.Height,
		TagList:  photo.TagList,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("finalizedEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: photo.ID,
		Type:        entity.EventPhotoFinalized,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}
