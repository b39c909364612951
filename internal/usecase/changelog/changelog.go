package changelog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/baiqizhang/CopyCat-Server/internal/dto"
	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
)

const (
	htmlOpen  = `<body style="background-color: #f2eeed;"><ol>`
	htmlClose = `</ol></body>`
	itemOpen  = `<li style='font-size: 14px;'>`
	itemClose = `</li>`
)

// ChangelogUseCase owns the changelog. Writers hold the lock across the
// whole clone, persist and swap, so the in-memory copy only changes after
// the file has been written.
type ChangelogUseCase struct {
	repo repo.ChangelogRepo

	mu      sync.RWMutex
	current *entity.Changelog
}

func New(ctx context.Context, r repo.ChangelogRepo) (*ChangelogUseCase, error) {
	c, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("ChangelogUseCase - New - r.Load: %w", err)
	}

	return &ChangelogUseCase{
		repo:    r,
		current: c,
	}, nil
}

// WhatsNew renders every entry newer than version, oldest first. A lang
// containing "en" selects the cn fragment, anything else eng.
func (uc *ChangelogUseCase) WhatsNew(version int, lang string) dto.WhatsNew {
	useCN := strings.Contains(lang, "en")

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var b strings.Builder
	b.WriteString(htmlOpen)

	cur := uc.current.CurVersion
	if version < cur {
		for v := max(version, 0) + 1; v <= cur; v++ {
			e, ok := uc.current.Entry(v)
			if !ok {
				continue
			}

			b.WriteString(itemOpen)
			if useCN {
				b.WriteString(e.CN)
			} else {
				b.WriteString(e.ENG)
			}
			b.WriteString(itemClose)
		}
	}

	b.WriteString(htmlClose)

	return dto.WhatsNew{
		CurVersion: cur,
		HTML:       b.String(),
	}
}

// Append stores a new bilingual entry under the next version.
func (uc *ChangelogUseCase) Append(ctx context.Context, cn, eng string) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current.Clone()
	version := next.Append(entity.ChangelogEntry{CN: cn, ENG: eng})

	if err := uc.repo.Save(ctx, next); err != nil {
		return 0, fmt.Errorf("ChangelogUseCase - Append - uc.repo.Save: %w", err)
	}

	uc.current = next

	return version, nil
}

// Reset replaces the changelog with an empty one.
func (uc *ChangelogUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := entity.NewChangelog()

	if err := uc.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("ChangelogUseCase - Reset - uc.repo.Save: %w", err)
	}

	uc.current = next

	return nil
}
