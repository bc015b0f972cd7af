package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hyperjump/kotae/internal/models"
)

// ResolvedSource is a Source backed by an open file.
type ResolvedSource struct {
	Source
	file *os.File
}

// Close closes the underlying file.
func (r *ResolvedSource) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ResolveSource opens the first candidate path that exists and returns it as
// a source of the given kind. When no candidate exists it returns (nil, nil).
func ResolveSource(kind models.Kind, candidates []string) (*ResolvedSource, error) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		return &ResolvedSource{
			Source: Source{Kind: kind, Name: path, Reader: f},
			file:   f,
		}, nil
	}
	return nil, nil
}
