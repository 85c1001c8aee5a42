// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kroniwo/gitattr"
)

// OSFileSystem is the default gitattr.FileSystem backed by the local
// operating system's filesystem, rooted at a fixed base directory.
type OSFileSystem struct {
	Root string
}

// NewOSFileSystem builds an OSFileSystem rooted at root.
func NewOSFileSystem(root string) *OSFileSystem {
	return &OSFileSystem{Root: root}
}

func (f *OSFileSystem) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Root, filepath.FromSlash(path))
}

// Stat returns a content signature built from size, modification time,
// and mode, matching spec.md §3's "(size, mtime, inode, mode) tuple or
// equivalent" (inode is platform-specific and omitted here to stay
// portable across io/fs.FileInfo implementations).
func (f *OSFileSystem) Stat(path string) (string, error) {
	info, err := os.Stat(f.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", gitattr.ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: stat %s: %v", gitattr.ErrIOFailure, path, err)
	}

	return fmt.Sprintf("%d:%d:%o", info.Size(), info.ModTime().UnixNano(), info.Mode()), nil
}

// ReadFile returns the full contents of path.
func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(f.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", gitattr.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", gitattr.ErrIOFailure, path, err)
	}

	return data, nil
}
