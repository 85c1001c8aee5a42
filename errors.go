// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "errors"

// Sentinel errors for gitattr operations.
var (
	// ErrInvalidArgument indicates a nil or malformed input at the public surface.
	ErrInvalidArgument = errors.New("gitattr: invalid argument")
	// ErrInvalidPattern indicates a pattern line that could not be compiled.
	ErrInvalidPattern = errors.New("gitattr: invalid pattern")
	// ErrNilSession indicates a nil Session receiver.
	ErrNilSession = errors.New("gitattr: session is nil")
	// ErrNilRepository indicates a nil Repository argument.
	ErrNilRepository = errors.New("gitattr: repository is nil")
	// ErrIOFailure indicates a read failed from an expected-present source.
	ErrIOFailure = errors.New("gitattr: i/o failure")
	// ErrNotFound indicates a specifically requested source does not exist.
	//
	// During collection this is absorbed as "no contribution" and never
	// surfaced to callers; FileSystem, Index and Repository implementations return
	// it (wrapped) so the Cache can tell a missing source from a real I/O
	// failure.
	ErrNotFound = errors.New("gitattr: source not found")
	// ErrCancelled is returned when a caller-supplied context is cancelled
	// between directory levels during collection or between files during
	// resolution.
	ErrCancelled = errors.New("gitattr: operation cancelled")
	// ErrCallbackAborted is returned when a ForEach callback returns a
	// non-nil error; the callback's error is wrapped, not replaced.
	ErrCallbackAborted = errors.New("gitattr: callback aborted")
)
