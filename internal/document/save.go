package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver persists an exported blob under filename and returns where it went
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// FileSaver writes exports into Dir. Files are written to a temporary name
// and renamed into place, so a failed save never leaves a partial file.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".quill-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("syncing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, filename)
	if err := os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("saving %s: %w", filename, err)
	}
	committed = true

	abs, err := filepath.Abs(dest)
	if err != nil {
		return dest, nil
	}
	return abs, nil
}
