package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/spf13/afero"
)

var slotFileName = strings.NewReplacer(":", "_", "/", "_", `\`, "_")

// FileSlotStore keeps one file per slot under dir.
type FileSlotStore struct {
	fs  afero.Fs
	dir string
}

func NewFileSlotStore(fs afero.Fs, dir string) *FileSlotStore {
	return &FileSlotStore{
		fs:  fs,
		dir: dir,
	}
}

func (f *FileSlotStore) path(key string) string {
	return filepath.Join(f.dir, slotFileName.Replace(key)+".json")
}

func (f *FileSlotStore) Get(_ context.Context, key string) (string, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrSlotEmpty
		}

		return "", fmt.Errorf("read slot: %w", err)
	}

	return string(data), nil
}

// Set writes to a temporary file and renames it over the slot, so readers
// never see a partial value.
func (f *FileSlotStore) Set(_ context.Context, key string, value string) error {
	err := f.fs.MkdirAll(f.dir, 0o750)
	if err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	path := f.path(key)
	tmp := path + ".tmp"

	err = afero.WriteFile(f.fs, tmp, []byte(value), 0o600)
	if err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}

	err = f.fs.Rename(tmp, path)
	if err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}
