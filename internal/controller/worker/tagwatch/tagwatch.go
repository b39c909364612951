package tagwatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baiqizhang/CopyCat-Server/internal/usecase"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/fsnotify/fsnotify"
)

const (
	_defaultRebuildTimeout = 10 * time.Second
	_defaultAttachInterval = 5 * time.Second
)

// Watcher rebuilds the search tag index whenever the popular tags
// directory changes. Events are collapsed into a single pending rebuild.
type Watcher struct {
	search usecase.SearchUseCase
	dir    string
	logger logger.Interface

	rebuildTimeout time.Duration
	attachInterval time.Duration

	fsw   *fsnotify.Watcher
	dirty chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(search usecase.SearchUseCase, dir string, l logger.Interface) *Watcher {
	return &Watcher{
		search:         search,
		dir:            dir,
		logger:         l,
		rebuildTimeout: _defaultRebuildTimeout,
		attachInterval: _defaultAttachInterval,
		dirty:          make(chan struct{}, 1),
	}
}

// Start builds the index once and then watches dir. A dir that does not
// exist yet is retried every attachInterval; the index stays empty until
// it appears.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Watcher - Start: %w", errs.ErrAlreadyStarted)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.started.Store(false)

		return fmt.Errorf("Watcher - Start - fsnotify.NewWatcher: %w", err)
	}

	w.fsw = fsw
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go w.events()
	go w.rebuilder()

	if err = fsw.Add(w.dir); err != nil {
		w.logger.Warn("Watcher - Start - fsw.Add: %s, retrying every %s", err, w.attachInterval)

		w.wg.Add(1)
		go w.attach()

		return nil
	}

	w.rebuild()

	return nil
}

// attach keeps trying to watch dir and schedules a rebuild once it can.
func (w *Watcher) attach() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.attachInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if err := w.fsw.Add(w.dir); err != nil {
				continue
			}
			w.logger.Info("Watcher - attach - watching %s", w.dir)
			w.markDirty()

			return
		}
	}
}

// events turns filesystem notifications into dirty marks.
func (w *Watcher) events() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) {
				continue
			}
			w.markDirty()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error(err, "Watcher - events - fsnotify")
			w.markDirty()
		}
	}
}

func (w *Watcher) markDirty() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

func (w *Watcher) rebuilder() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.dirty:
			w.rebuild()
		}
	}
}

func (w *Watcher) rebuild() {
	ctx, cancel := context.WithTimeout(w.ctx, w.rebuildTimeout)
	defer cancel()

	if err := w.search.RebuildTags(ctx); err != nil {
		w.logger.Error(err, "Watcher - rebuild - w.search.RebuildTags")

		return
	}

	w.logger.Debug("Watcher - rebuild - tag index rebuilt, dir=%s", w.dir)
}

func (w *Watcher) Shutdown(ctx context.Context) error {
	if !w.started.Load() || w.cancel == nil {
		return nil
	}

	w.cancel()

	done := make(chan struct{})

	go func() {
		w.wg.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Error(err, "Watcher - Shutdown - w.fsw.Close")
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("Watcher - Shutdown: %w", ctx.Err())
	}
}
