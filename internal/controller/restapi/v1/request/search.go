package request

type Search struct {
	Labels string `query:"labels" validate:"required"`
}

type DetectLabels struct {
	URL string `query:"url" validate:"required,url"`
}

type SearchLog struct {
	Keyword string `query:"keyword"`
}
