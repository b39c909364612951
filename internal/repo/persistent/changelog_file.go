package persistent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/goccy/go-json"
)

type ChangelogFileRepo struct {
	path string
}

func NewChangelogFileRepo(path string) *ChangelogFileRepo {
	return &ChangelogFileRepo{path: path}
}

// Load returns the initial empty changelog when the file does not exist.
func (r *ChangelogFileRepo) Load(_ context.Context) (*entity.Changelog, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.NewChangelog(), nil
		}
		return nil, fmt.Errorf("ChangelogFileRepo - Load - os.ReadFile: %w", err)
	}

	changelog := entity.NewChangelog()

	err = json.Unmarshal(data, changelog)
	if err != nil {
		return nil, fmt.Errorf("ChangelogFileRepo - Load - json.Unmarshal: %w", err)
	}

	if changelog.Histories == nil {
		changelog.Histories = make(map[string]entity.ChangelogEntry)
	}

	return changelog, nil
}

func (r *ChangelogFileRepo) Save(_ context.Context, changelog *entity.Changelog) error {
	data, err := json.Marshal(changelog)
	if err != nil {
		return fmt.Errorf("ChangelogFileRepo - Save - json.Marshal: %w", err)
	}

	err = writeFile(r.path, data)
	if err != nil {
		return fmt.Errorf("ChangelogFileRepo - Save - writeFile: %w", err)
	}

	return nil
}
