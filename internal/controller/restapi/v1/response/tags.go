package response

type Tags struct {
	Tags []string `json:"tags"`
}
