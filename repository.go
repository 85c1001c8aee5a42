// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

// Repository is the external collaborator that owns working-tree,
// index, and commit access. Implementations live outside this module
// (spec.md §1); gitattr/gitfs ships a default OS-backed one.
type Repository interface {
	// Workdir returns the absolute working-tree root, and false for a
	// bare repository.
	Workdir() (string, bool)
	// IsBare reports whether the repository has no working tree.
	IsBare() bool
	// Index returns the repository's index for blob lookups.
	Index() Index
	// CommitTreeEntry returns the blob bytes and object id at path in
	// the given commit, or ErrNotFound if either is absent.
	CommitTreeEntry(commitID, path string) (data []byte, oid string, err error)
	// ItemPath returns the path to a well-known repository item, e.g.
	// the "$GIT_DIR/info" directory.
	ItemPath(item RepoItem) (string, error)
	// AttributesExtraPath returns the configured extra attributes file
	// path (core.attributesfile), and false if unset.
	AttributesExtraPath() (string, bool)
}

// RepoItem enumerates the well-known repository-relative items this
// module needs a path for.
type RepoItem uint8

const (
	// ItemInfo is the "$GIT_DIR/info" directory, holding info/attributes.
	ItemInfo RepoItem = iota
)

// Index is the subset of index access the Collector needs: reading a
// tracked blob's bytes and object id by path.
type Index interface {
	// Entry returns the blob bytes and object id staged at path, or
	// ErrNotFound if path is not in the index.
	Entry(path string) (data []byte, oid string, err error)
}

// FileSystem is the external collaborator for reading working-tree
// files and detecting their staleness.
type FileSystem interface {
	// Stat returns a content signature for path (spec.md §3's
	// "(size, mtime, inode, mode) tuple or equivalent"), or ErrNotFound.
	Stat(path string) (signature string, err error)
	// ReadFile returns the full contents of path, or ErrNotFound.
	ReadFile(path string) ([]byte, error)
}

// PathWalker yields ancestor directories of start, inclusive of start,
// exclusive of root's parent (spec.md §6, §9's "path walk as a
// callback" note, expressed here as an iterator).
type PathWalker interface {
	// WalkUp calls fn for start and each ancestor directory up to and
	// including root. Iteration stops early if fn returns false.
	WalkUp(start, root string, fn func(dir string) bool)
}
