package searchlog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/baiqizhang/CopyCat-Server/internal/metrics"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
)

type command struct {
	keyword  string
	snapshot chan map[string]int
}

// SearchLogUseCase keeps the keyword tally. A single goroutine owns the
// map: it applies each recorded keyword and then rewrites the tally file,
// so callers never wait on disk.
type SearchLogUseCase struct {
	repo   repo.TallyRepo
	logger logger.Interface

	tally map[string]int
	cmds  chan command

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup

	started atomic.Bool
}

// New seeds the tally from the repo. A missing or unreadable file yields
// an empty tally.
func New(ctx context.Context, r repo.TallyRepo, l logger.Interface, queueSize int) *SearchLogUseCase {
	tally, err := r.Load(ctx)
	if err != nil {
		l.Warn("SearchLogUseCase - New - r.Load: starting with empty tally, error=%v", err)
	}
	if tally == nil {
		tally = make(map[string]int)
	}

	if queueSize <= 0 {
		queueSize = 1
	}

	return &SearchLogUseCase{
		repo:   r,
		logger: l,
		tally:  tally,
		cmds:   make(chan command, queueSize),
		done:   make(chan struct{}),
	}
}

func (uc *SearchLogUseCase) Start(ctx context.Context) error {
	if !uc.started.CompareAndSwap(false, true) {
		return fmt.Errorf("SearchLogUseCase - Start: %w", errs.ErrAlreadyStarted)
	}

	uc.ctx, uc.cancel = context.WithCancel(ctx)

	uc.wg.Add(1)
	go uc.run()

	return nil
}

func (uc *SearchLogUseCase) run() {
	defer uc.wg.Done()
	defer close(uc.done)

	for {
		select {
		case cmd := <-uc.cmds:
			uc.handle(cmd)
		case <-uc.ctx.Done():
			uc.drain()

			return
		}
	}
}

// drain applies whatever is still queued once the actor is stopping.
func (uc *SearchLogUseCase) drain() {
	for {
		select {
		case cmd := <-uc.cmds:
			uc.handle(cmd)
		default:
			return
		}
	}
}

func (uc *SearchLogUseCase) handle(cmd command) {
	if cmd.snapshot != nil {
		cmd.snapshot <- copyTally(uc.tally)

		return
	}

	uc.tally[cmd.keyword]++
	metrics.SearchLogRecorded.Inc()

	// persistence outlives the actor context so the drain can still write
	err := uc.repo.Save(context.WithoutCancel(uc.ctx), copyTally(uc.tally))
	if err != nil {
		metrics.SearchLogPersistErrors.Inc()
		uc.logger.Error(err, "SearchLogUseCase - handle - uc.repo.Save")
	}
}

// Record queues keyword (lowercased) for counting. Empty keywords are
// ignored.
func (uc *SearchLogUseCase) Record(ctx context.Context, keyword string) error {
	keyword = strings.ToLower(keyword)
	if keyword == "" {
		return nil
	}

	return uc.send(ctx, command{keyword: keyword})
}

// Snapshot returns a copy of the tally as seen by the actor.
func (uc *SearchLogUseCase) Snapshot(ctx context.Context) (map[string]int, error) {
	reply := make(chan map[string]int, 1)

	if err := uc.send(ctx, command{snapshot: reply}); err != nil {
		return nil, err
	}

	select {
	case t := <-reply:
		return t, nil
	case <-uc.done:
		return nil, fmt.Errorf("SearchLogUseCase - Snapshot: %w", errs.ErrWorkerStopped)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (uc *SearchLogUseCase) send(ctx context.Context, cmd command) error {
	if !uc.started.Load() {
		return fmt.Errorf("SearchLogUseCase - send: %w", errs.ErrWorkerStopped)
	}

	select {
	case <-uc.done:
		return fmt.Errorf("SearchLogUseCase - send: %w", errs.ErrWorkerStopped)
	default:
	}

	select {
	case uc.cmds <- cmd:
		return nil
	case <-uc.done:
		return fmt.Errorf("SearchLogUseCase - send: %w", errs.ErrWorkerStopped)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *SearchLogUseCase) Shutdown(ctx context.Context) error {
	if !uc.started.Load() {
		return nil
	}

	if uc.cancel != nil {
		uc.cancel()
	}

	done := make(chan struct{})

	go func() {
		uc.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("SearchLogUseCase - Shutdown: %w", ctx.Err())
	}
}

func copyTally(t map[string]int) map[string]int {
	cp := make(map[string]int, len(t))
	for k, v := range t {
		cp[k] = v
	}

	return cp
}
