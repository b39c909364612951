package dto

type UploadPhoto struct {
	Data        []byte
	ReferenceID *string
	OwnerID     *string
	TagList     []string
}

// PhotoFinalized is the outbox payload written when a photo gets its URL.
type PhotoFinalized struct {
	ID       string   `json:"id"`
	ImageURL string   `json:"imageUrl"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TagList  []string `json:"tagList"`
}
