package adapter

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// ArtifactStore persists generated layer files.
type ArtifactStore interface {
	// WriteLayer writes text to path, creating parent directories and
	// replacing any previous file. Failures are *model.WriteError.
	WriteLayer(path m.Path, text string) error
	// EnsureDir creates dir and its parents.
	EnsureDir(dir m.Path) error
}

// LocalArtifactStore writes artifacts to the local filesystem. Writes are not
// transactional: an interrupted write leaves a truncated file.
type LocalArtifactStore struct{}

// NewLocalArtifactStore constructs a LocalArtifactStore.
func NewLocalArtifactStore() *LocalArtifactStore {
	return &LocalArtifactStore{}
}

// EnsureDir creates dir and its parents.
func (s *LocalArtifactStore) EnsureDir(dir m.Path) error {
	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return &m.WriteError{Path: dir, Err: err}
	}

	return nil
}

// WriteLayer overwrites path with text.
func (s *LocalArtifactStore) WriteLayer(path m.Path, text string) error {
	if err := s.EnsureDir(m.Path(filepath.Dir(string(path)))); err != nil {
		return err
	}

	logStaleDiff(path, text)

	if err := os.WriteFile(string(path), []byte(text), 0o644); err != nil {
		return &m.WriteError{Path: path, Err: err}
	}

	slog.Debug("wrote layer", "path", path, "bytes", len(text))

	return nil
}

// logStaleDiff logs how a previous run's artifact differs from the new text.
func logStaleDiff(path m.Path, text string) {
	previous, err := os.ReadFile(string(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("cannot read previous artifact", "path", path, "error", err)
		}

		return
	}

	if string(previous) == text {
		return
	}

	patch, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(text),
		FromFile: string(path) + " (previous run)",
		ToFile:   string(path),
		Context:  2,
	})
	if err != nil {
		return
	}

	slog.Debug("overwriting stale artifact", "path", path, "diff", strings.TrimSpace(patch))
}
