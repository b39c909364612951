package persistent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
)

// TallyFileRepo keeps the keyword tally as one JSON object in a flat file.
type TallyFileRepo struct {
	path string
}

func NewTallyFileRepo(path string) *TallyFileRepo {
	return &TallyFileRepo{path: path}
}

// Load returns an empty tally when the file does not exist yet.
func (r *TallyFileRepo) Load(_ context.Context) (map[string]int, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("TallyFileRepo - Load - os.ReadFile: %w", err)
	}

	tally := map[string]int{}

	err = json.Unmarshal(data, &tally)
	if err != nil {
		return nil, fmt.Errorf("TallyFileRepo - Load - json.Unmarshal: %w", err)
	}

	return tally, nil
}

func (r *TallyFileRepo) Save(_ context.Context, tally map[string]int) error {
	data, err := json.Marshal(tally)
	if err != nil {
		return fmt.Errorf("TallyFileRepo - Save - json.Marshal: %w", err)
	}

	err = writeFile(r.path, data)
	if err != nil {
		return fmt.Errorf("TallyFileRepo - Save - writeFile: %w", err)
	}

	return nil
}
