package request

type UploadPhoto struct {
	Data        string   `json:"data" validate:"required"`
	ReferenceID *string  `json:"referenceId"`
	OwnerID     *string  `json:"ownerId"`
	TagList     []string `json:"tagList" validate:"omitempty,dive,max=128"`
}
