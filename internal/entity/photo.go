package entity

import (
	"time"

	"github.com/google/uuid"
)

// Photo is created empty and finalized once the upload pipeline has set
// ImageURL, Width and Height.
type Photo struct {
	ID uuid.UUID `json:"id"`

	OwnerID     *string  `json:"ownerId,omitempty"`
	ReferenceID *string  `json:"referenceId,omitempty"`
	TagList     []string `json:"tagList"`

	ImageURL *string `json:"imageUrl"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Photo) Finalized() bool {
	return p.ImageURL != nil
}
