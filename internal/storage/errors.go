// Package storage writes converted images next to their sources. It owns the
// replacement protocol: best-effort removal of the source followed by a
// temp-file-and-rename write of the new bytes.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrWrite indicates the output could not be written. It is always fatal
	// for the file being processed.
	ErrWrite = errors.New("storage: write failed")

	// ErrPermissionDenied indicates insufficient permissions for the path.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidPath indicates an empty or relative path.
	ErrInvalidPath = errors.New("storage: invalid path")
)
