// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "fmt"

// SourceKind classifies where an AttrFile's raw bytes came from.
type SourceKind uint8

const (
	// SourceWorktree is an untracked file read straight off disk.
	SourceWorktree SourceKind = iota
	// SourceIndex is a blob staged in the repository's index.
	SourceIndex
	// SourceCommit is a blob reachable from a specific commit (HEAD or
	// otherwise), used for attribute lookups against historical trees.
	SourceCommit
	// SourceSystem is the repository-independent system-wide attributes
	// file (e.g. /etc/gitattributes).
	SourceSystem
	// SourceInfo is the repository-local "info/attributes" file, or the
	// configured extra attributes file; neither is read from any tree.
	SourceInfo
	// SourceBuffer is an in-memory byte buffer supplied directly by a
	// caller, bypassing the filesystem and object database entirely.
	SourceBuffer
)

// String renders the kind for logging and error messages.
func (k SourceKind) String() string {
	switch k {
	case SourceWorktree:
		return "worktree"
	case SourceIndex:
		return "index"
	case SourceCommit:
		return "commit"
	case SourceSystem:
		return "system"
	case SourceInfo:
		return "info"
	case SourceBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Source names one candidate gitattributes-bearing location: a path
// relative to some directory, tagged with where its bytes should be
// read from and (for SourceCommit) which commit to read them at.
//
// Source itself is not comparable (Buffer is a slice); the Cache keys
// entries by the comparable cacheKey that key derives from it. CommitID
// is stored as a string so that key stays comparable regardless of the
// caller's own object-id representation.
type Source struct {
	Kind SourceKind
	// Dir is the slash-separated, repo-relative directory this source's
	// attributes file lives in (empty for the root).
	Dir string
	// Name is the file's base name, e.g. ".gitattributes". For
	// SourceSystem and SourceInfo it is the file's full path, and for
	// SourceBuffer a label; Dir is not joined to it for those kinds.
	Name string
	// CommitID identifies the commit to read from when Kind is
	// SourceCommit. Empty otherwise.
	CommitID string
	// Buffer holds the raw bytes directly when Kind is SourceBuffer.
	// Excluded from the cache key by design: buffer sources are never
	// cached, since two calls with the same Dir could carry different
	// content (spec.md §4.5).
	Buffer []byte
}

// cacheKey is the comparable portion of a Source used as a Cache map
// key. SourceBuffer sources are never cached (see Buffer's doc comment):
// Cache.Get parses them directly and never derives a key for them.
type cacheKey struct {
	kind     SourceKind
	dir      string
	name     string
	commitID string
}

func (s Source) key() cacheKey {
	return cacheKey{kind: s.Kind, dir: s.Dir, name: s.Name, commitID: s.CommitID}
}

// path returns the source's full repo-relative path, for sources that
// have one.
func (s Source) path() string {
	switch s.Kind {
	case SourceSystem, SourceInfo, SourceBuffer:
		return s.Name
	default:
		return joinRel(s.Dir, s.Name)
	}
}

// describe renders a Source for log messages and errors.
func (s Source) describe() string {
	if s.Kind == SourceCommit {
		return fmt.Sprintf("%s:%s@%s", s.Kind, s.path(), s.CommitID)
	}

	return fmt.Sprintf("%s:%s", s.Kind, s.path())
}
