package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PopularTagsRepo reads a directory laid out as <root>/<tag>/<file>.
type PopularTagsRepo struct {
	root string
}

func NewPopularTagsRepo(root string) *PopularTagsRepo {
	return &PopularTagsRepo{root: root}
}

func (r *PopularTagsRepo) Root() string {
	return r.root
}

// ListTags returns the names of the subdirectories of root.
func (r *PopularTagsRepo) ListTags(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("PopularTagsRepo - ListTags - os.ReadDir: %w", err)
	}

	tags := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			tags = append(tags, e.Name())
		}
	}

	return tags, nil
}

// ListFiles returns the regular files directly under root/tag.
func (r *PopularTagsRepo) ListFiles(_ context.Context, tag string) ([]string, error) {
	if tag == "" || tag != filepath.Base(tag) || tag == "." || tag == ".." {
		return nil, fmt.Errorf("PopularTagsRepo - ListFiles: invalid tag %q", tag)
	}

	entries, err := os.ReadDir(filepath.Join(r.root, tag))
	if err != nil {
		return nil, fmt.Errorf("PopularTagsRepo - ListFiles - os.ReadDir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}

	return files, nil
}
