package persistent

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFile replaces path with data. The content goes to a temp file in
// the same directory first so readers never see a half-written file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("writeFile - os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writeFile - os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writeFile - tmp.Write: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writeFile - tmp.Close: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writeFile - os.Rename: %w", err)
	}

	return nil
}
