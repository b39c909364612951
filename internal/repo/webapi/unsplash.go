package webapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/metrics"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
)

const (
	unsplashSource     = "unsplash"
	unsplashSearchPath = "/photos/search"
	maxResponseBytes   = 10 << 20
)

type unsplashPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
	} `json:"urls"`
	CreatedAt string `json:"created_at"`
}

type unsplashPage struct {
	Results []unsplashPhoto `json:"results"`
}

type UnsplashWebAPI struct {
	client   *http.Client
	baseURL  string
	clientID string
	breaker  *gobreaker.CircuitBreaker[[]entity.AggregatedPhoto]
}

func NewUnsplashWebAPI(client *http.Client, baseURL, clientID string, failures uint32, openTimeout time.Duration) *UnsplashWebAPI {
	return &UnsplashWebAPI{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		breaker: gobreaker.NewCircuitBreaker[[]entity.AggregatedPhoto](gobreaker.Settings{
			Name:    unsplashSource,
			Timeout: openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
}

// SearchPhotos issues one search for all labels and keeps only the URL
// variants and creation time of each hit.
func (w *UnsplashWebAPI) SearchPhotos(ctx context.Context, labels []string) ([]entity.AggregatedPhoto, error) {
	photos, err := w.breaker.Execute(func() ([]entity.AggregatedPhoto, error) {
		return w.search(ctx, labels)
	})
	metrics.ObserveUpstream(unsplashSource, err)
	if err != nil {
		return nil, fmt.Errorf("UnsplashWebAPI - SearchPhotos - w.breaker.Execute: %w", err)
	}

	return photos, nil
}

func (w *UnsplashWebAPI) search(ctx context.Context, labels []string) ([]entity.AggregatedPhoto, error) {
	q := url.Values{}
	q.Set("query", strings.Join(labels, ","))
	q.Set("client_id", w.clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+unsplashSearchPath+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("UnsplashWebAPI - search - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("UnsplashWebAPI - search - w.client.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("UnsplashWebAPI - search - io.ReadAll: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("UnsplashWebAPI - search - status %d: %w", resp.StatusCode, errs.ErrUpstreamStatus)
	}

	raw, err := decodeUnsplash(body)
	if err != nil {
		return nil, fmt.Errorf("UnsplashWebAPI - search - decodeUnsplash: %w", err)
	}

	photos := make([]entity.AggregatedPhoto, 0, len(raw))
	for _, p := range raw {
		photos = append(photos, entity.AggregatedPhoto{
			URLs: entity.PhotoURLs{
				Regular: p.URLs.Regular,
				Small:   p.URLs.Small,
			},
			CreatedAt: p.CreatedAt,
		})
	}

	return photos, nil
}

// decodeUnsplash accepts the legacy bare array as well as the paged
// {"results": [...]} object.
func decodeUnsplash(body []byte) ([]unsplashPhoto, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page unsplashPage
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("json.Unmarshal page: %w", err)
		}
		return page.Results, nil
	}

	var photos []unsplashPhoto
	if err := json.Unmarshal(trimmed, &photos); err != nil {
		return nil, fmt.Errorf("json.Unmarshal list: %w", err)
	}

	return photos, nil
}
