package progress

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// FileStore keeps progress in a small YAML file. A missing or unreadable
// file loads as the default progress.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (store *FileStore) Load(ctx context.Context) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}

	in, err := os.ReadFile(store.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Progress{}, fmt.Errorf("read %s: %w", store.Path, err)
	}

	progress := Default()
	if err := yaml.Unmarshal(in, &progress); err != nil || progress.MaxUnlockedStage < 1 {
		return Default(), nil
	}
	return progress, nil
}

func (store *FileStore) Save(ctx context.Context, progress Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := yaml.Marshal(progress)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	return os.WriteFile(store.Path, out, 0666)
}
