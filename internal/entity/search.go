package entity

type PhotoURLs struct {
	Regular string `json:"regular"`
	Small   string `json:"small"`
}

// AggregatedPhoto is one search hit, whichever source it came from.
type AggregatedPhoto struct {
	URLs      PhotoURLs `json:"urls"`
	CreatedAt string    `json:"created_at"`
}
