package storage

import "context"

// System performs the filesystem side effects of a conversion.
type System interface {
	// Replace puts data at out and retires source. In the default order the
	// source is removed first, best-effort, and the write follows; with safe
	// replace the write comes first and the source is removed only after it
	// succeeds and only when source differs from out. Removal failures are
	// swallowed; write failures are returned wrapping ErrWrite.
	Replace(ctx context.Context, source, out string, data []byte) error

	// Write creates or truncates path with data.
	Write(ctx context.Context, path string, data []byte) error

	// EnsureDir creates path and its parents. An existing directory is not an
	// error, including one created concurrently by another task.
	EnsureDir(ctx context.Context, path string) error

	// Remove deletes path. A missing file is not an error.
	Remove(ctx context.Context, path string) error
}
