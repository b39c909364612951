package tagwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/repo/localfs"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/search"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RebuildsOnDirectoryChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cat"), 0o755))

	l := logger.New("error")
	uc := search.New(localfs.NewPopularTagsRepo(dir), nil, "http://localhost:3001", l)

	w := New(uc, dir, l)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { require.NoError(t, w.Shutdown(context.Background())) })

	require.Equal(t, []string{"cat"}, uc.Tags())

	require.NoError(t, os.Mkdir(filepath.Join(dir, "dog"), 0o755))
	require.Eventually(t, func() bool {
		return len(uc.Tags()) == 2
	}, 3*time.Second, 20*time.Millisecond)
	require.Equal(t, []string{"cat", "dog"}, uc.Tags())

	require.NoError(t, os.Remove(filepath.Join(dir, "cat")))
	require.Eventually(t, func() bool {
		tags := uc.Tags()
		return len(tags) == 1 && tags[0] == "dog"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_AttachesWhenDirAppears(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "popularTags")

	l := logger.New("error")
	uc := search.New(localfs.NewPopularTagsRepo(dir), nil, "", l)

	w := New(uc, dir, l)
	w.attachInterval = 20 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { require.NoError(t, w.Shutdown(context.Background())) })

	require.Empty(t, uc.Tags())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cat"), 0o755))
	require.Eventually(t, func() bool {
		tags := uc.Tags()
		return len(tags) == 1 && tags[0] == "cat"
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "dog"), 0o755))
	require.Eventually(t, func() bool {
		return len(uc.Tags()) == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_ShutdownWhileAttaching(t *testing.T) {
	l := logger.New("error")
	dir := filepath.Join(t.TempDir(), "missing")
	uc := search.New(localfs.NewPopularTagsRepo(dir), nil, "", l)

	w := New(uc, dir, l)
	w.attachInterval = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestWatcher_ShutdownNotStarted(t *testing.T) {
	w := New(nil, "", logger.New("error"))
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestWatcher_MarkDirtyCoalesces(t *testing.T) {
	w := New(nil, "", logger.New("error"))

	for i := 0; i < 10; i++ {
		w.markDirty()
	}

	require.Len(t, w.dirty, 1)
}
