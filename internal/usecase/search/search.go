package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/metrics"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// PopularTagsPath is the URL path the popular tags directory is served under.
const PopularTagsPath = "/popularTags"

type SearchUseCase struct {
	tagRepo      repo.TagDirRepo
	webAPI       repo.PhotoSearchWebAPI
	publicPrefix string
	logger       logger.Interface

	mu   sync.RWMutex
	tags map[string]struct{}

	now func() time.Time
}

func New(
	tagRepo repo.TagDirRepo,
	webAPI repo.PhotoSearchWebAPI,
	publicPrefix string,
	l logger.Interface,
) *SearchUseCase {
	return &SearchUseCase{
		tagRepo:      tagRepo,
		webAPI:       webAPI,
		publicPrefix: publicPrefix,
		logger:       l,
		tags:         make(map[string]struct{}),
		now:          time.Now,
	}
}

// RebuildTags replaces the cached tag set with a fresh directory listing.
// On error the previous set is kept.
func (uc *SearchUseCase) RebuildTags(ctx context.Context) error {
	names, err := uc.tagRepo.ListTags(ctx)
	if err != nil {
		metrics.TagIndexRebuilds.WithLabelValues(metrics.OutcomeError).Inc()

		return fmt.Errorf("SearchUseCase - RebuildTags - uc.tagRepo.ListTags: %w", err)
	}

	tags := make(map[string]struct{}, len(names))
	for _, n := range names {
		tags[n] = struct{}{}
	}

	uc.mu.Lock()
	uc.tags = tags
	uc.mu.Unlock()

	metrics.TagIndexSize.Set(float64(len(tags)))
	metrics.TagIndexRebuilds.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return nil
}

func (uc *SearchUseCase) Tags() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	tags := make([]string, 0, len(uc.tags))
	for t := range uc.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return tags
}

func (uc *SearchUseCase) cached(label string) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	_, ok := uc.tags[label]

	return ok
}

// Search merges local popular-tag files for every cached label with one
// external search over all labels. Results are not ordered or deduplicated.
func (uc *SearchUseCase) Search(ctx context.Context, labels []string) ([]entity.AggregatedPhoto, error) {
	requested := uc.now().UTC().Format(time.RFC3339)

	var local []string
	for _, label := range labels {
		if uc.cached(label) {
			local = append(local, label)
		}
	}

	// the last slot holds the external search results
	parts := make([][]entity.AggregatedPhoto, len(local)+1)

	g, gctx := errgroup.WithContext(ctx)

	for i, label := range local {
		g.Go(func() error {
			parts[i] = uc.local(gctx, label, requested)

			return nil
		})
	}

	g.Go(func() error {
		photos, err := uc.webAPI.SearchPhotos(gctx, labels)
		if err != nil {
			return fmt.Errorf("uc.webAPI.SearchPhotos: %w", err)
		}
		parts[len(parts)-1] = photos

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("SearchUseCase - Search - %w", err)
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}

	result := make([]entity.AggregatedPhoto, 0, total)
	for _, p := range parts {
		result = append(result, p...)
	}

	return result, nil
}

func (uc *SearchUseCase) local(ctx context.Context, label, createdAt string) []entity.AggregatedPhoto {
	files, err := uc.tagRepo.ListFiles(ctx, label)
	if err != nil {
		uc.logger.Debug("SearchUseCase - local - uc.tagRepo.ListFiles: label=%s, error=%v", label, err)

		return nil
	}

	photos := make([]entity.AggregatedPhoto, 0, len(files))
	for _, f := range files {
		u := uc.publicPrefix + PopularTagsPath + "/" + label + "/" + f
		photos = append(photos, entity.AggregatedPhoto{
			URLs:      entity.PhotoURLs{Regular: u, Small: u},
			CreatedAt: createdAt,
		})
	}

	return photos
}
