package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// filesystem implements System on the local disk. All paths are absolute
// and refer to the user's files directly.
type filesystem struct {
	safeReplace bool
	logger      *slog.Logger
}

// New creates a filesystem storage system. When safeReplace is set the
// source file is only removed after the new file has been written.
func New(safeReplace bool, logger *slog.Logger) System {
	return &filesystem{
		safeReplace: safeReplace,
		logger:      logger.With("system", "storage"),
	}
}

func (f *filesystem) Replace(ctx context.Context, source, out string, data []byte) error {
	if f.safeReplace {
		if err := f.Write(ctx, out, data); err != nil {
			return err
		}
		if filepath.Clean(source) != filepath.Clean(out) {
			f.removeBestEffort(ctx, source)
		}
		return nil
	}

	f.removeBestEffort(ctx, source)
	return f.Write(ctx, out, data)
}

func (f *filesystem) Write(ctx context.Context, path string, data []byte) error {
	if err := validPath(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, mapError(err))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		f.logger.Debug("chmod temp file failed", "path", tmpPath, "error", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, mapError(err))
	}

	return nil
}

func (f *filesystem) EnsureDir(ctx context.Context, path string) error {
	if err := validPath(path); err != nil {
		return err
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrWrite, path, mapError(err))
	}
	return nil
}

func (f *filesystem) Remove(ctx context.Context, path string) error {
	if err := validPath(path); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", path, mapError(err))
	}
	return nil
}

// removeBestEffort deletes path. Failures are intentionally not reported.
func (f *filesystem) removeBestEffort(ctx context.Context, path string) {
	_ = f.Remove(ctx, path)
}

func validPath(path string) error {
	if path == "" || !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return ErrPermissionDenied
	}
	return err
}
