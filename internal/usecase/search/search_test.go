package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/stretchr/testify/require"
)

type tagDirStub struct {
	mu    sync.Mutex
	tags  []string
	files map[string][]string
	err   error
}

func (s *tagDirStub) ListTags(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tags, s.err
}

func (s *tagDirStub) ListFiles(_ context.Context, tag string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, ok := s.files[tag]
	if !ok {
		return nil, fmt.Errorf("no such dir %s", tag)
	}

	return files, nil
}

type webAPIStub struct {
	got    []string
	photos []entity.AggregatedPhoto
	err    error
}

func (s *webAPIStub) SearchPhotos(_ context.Context, labels []string) ([]entity.AggregatedPhoto, error) {
	s.got = labels

	return s.photos, s.err
}

var fixedNow = time.Date(2016, 5, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, dir *tagDirStub, api *webAPIStub) *SearchUseCase {
	t.Helper()

	uc := New(dir, api, "http://localhost:3001", logger.New("error"))
	uc.now = func() time.Time { return fixedNow }
	require.NoError(t, uc.RebuildTags(context.Background()))

	return uc
}

func TestSearch_MergesLocalAndExternal(t *testing.T) {
	dir := &tagDirStub{
		tags: []string{"cat", "dog"},
		files: map[string][]string{
			"cat": {"1.jpg", "2.jpg"},
			"dog": {"3.jpg"},
		},
	}
	external := entity.AggregatedPhoto{
		URLs:      entity.PhotoURLs{Regular: "https://u/r", Small: "https://u/s"},
		CreatedAt: "2016-01-01T00:00:00Z",
	}
	api := &webAPIStub{photos: []entity.AggregatedPhoto{external}}

	uc := newUseCase(t, dir, api)

	photos, err := uc.Search(context.Background(), []string{"cat", "tree"})
	require.NoError(t, err)

	local := func(f string) entity.AggregatedPhoto {
		u := "http://localhost:3001/popularTags/cat/" + f
		return entity.AggregatedPhoto{
			URLs:      entity.PhotoURLs{Regular: u, Small: u},
			CreatedAt: "2016-05-01T12:00:00Z",
		}
	}

	require.ElementsMatch(t, []entity.AggregatedPhoto{local("1.jpg"), local("2.jpg"), external}, photos)
	require.Equal(t, []string{"cat", "tree"}, api.got)
}

func TestSearch_LocalListingErrorIsIgnored(t *testing.T) {
	dir := &tagDirStub{tags: []string{"cat"}, files: map[string][]string{}}
	api := &webAPIStub{photos: []entity.AggregatedPhoto{}}

	uc := newUseCase(t, dir, api)

	photos, err := uc.Search(context.Background(), []string{"cat"})
	require.NoError(t, err)
	require.Empty(t, photos)
}

func TestSearch_ExternalErrorFails(t *testing.T) {
	boom := errors.New("unsplash down")
	dir := &tagDirStub{tags: []string{"cat"}, files: map[string][]string{"cat": {"1.jpg"}}}
	api := &webAPIStub{err: boom}

	uc := newUseCase(t, dir, api)

	_, err := uc.Search(context.Background(), []string{"cat"})
	require.ErrorIs(t, err, boom)
}

func TestRebuildTags(t *testing.T) {
	dir := &tagDirStub{tags: []string{"dog", "cat"}}
	uc := newUseCase(t, dir, &webAPIStub{})

	require.Equal(t, []string{"cat", "dog"}, uc.Tags())

	dir.mu.Lock()
	dir.tags = []string{"bird"}
	dir.mu.Unlock()

	require.NoError(t, uc.RebuildTags(context.Background()))
	require.Equal(t, []string{"bird"}, uc.Tags())
}

func TestRebuildTags_ErrorKeepsPreviousSet(t *testing.T) {
	dir := &tagDirStub{tags: []string{"cat"}}
	uc := newUseCase(t, dir, &webAPIStub{})

	dir.mu.Lock()
	dir.err = errors.New("permission denied")
	dir.mu.Unlock()

	require.Error(t, uc.RebuildTags(context.Background()))
	require.Equal(t, []string{"cat"}, uc.Tags())
}
