// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitfs

import (
	"fmt"
	"path"
	"sync"

	"github.com/kroniwo/gitattr"
)

// MemIndex is a minimal in-memory stand-in for a git index: a flat
// name-to-entry map (grounded on the conceptual shape described in
// Nivl-git-go's index documentation), kept deliberately free of the
// real on-disk index format since parsing that format is out of scope
// (spec.md §1).
type MemIndex struct {
	mu      sync.RWMutex
	entries map[string]indexEntry
}

type indexEntry struct {
	data []byte
	oid  string
}

// NewMemIndex builds an empty MemIndex.
func NewMemIndex() *MemIndex {
	return &MemIndex{entries: make(map[string]indexEntry)}
}

// Stage records path as staged with the given blob contents and object
// id, overwriting any prior entry.
func (idx *MemIndex) Stage(path, oid string, data []byte) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[path] = indexEntry{data: data, oid: oid}
}

// Entry implements gitattr.Index.
func (idx *MemIndex) Entry(p string) ([]byte, string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[p]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", gitattr.ErrNotFound, p)
	}

	return e.data, e.oid, nil
}

// MemObjectDB is a minimal in-memory stand-in for commit-blob lookups,
// keyed by (commit id, path). Real commit-tree traversal is out of
// scope (spec.md §1); callers populate it directly, e.g. from a test
// fixture or a thin adapter over a real object database.
type MemObjectDB struct {
	mu      sync.RWMutex
	commits map[string]map[string]indexEntry
}

// NewMemObjectDB builds an empty MemObjectDB.
func NewMemObjectDB() *MemObjectDB {
	return &MemObjectDB{commits: make(map[string]map[string]indexEntry)}
}

// Put records the blob at path in commitID.
func (db *MemObjectDB) Put(commitID, path, oid string, data []byte) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.commits[commitID] == nil {
		db.commits[commitID] = make(map[string]indexEntry)
	}
	db.commits[commitID][path] = indexEntry{data: data, oid: oid}
}

// Get returns the blob bytes and object id for path in commitID.
func (db *MemObjectDB) Get(commitID, path string) ([]byte, string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tree, ok := db.commits[commitID]
	if !ok {
		return nil, "", fmt.Errorf("%w: commit %s", gitattr.ErrNotFound, commitID)
	}

	e, ok := tree[path]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s@%s", gitattr.ErrNotFound, path, commitID)
	}

	return e.data, e.oid, nil
}

// Repository is the default gitattr.Repository implementation: a
// working tree rooted at Root, backed by an in-memory index and
// object database. Bare repositories are represented by Bare=true, in
// which case Root is ignored.
type Repository struct {
	Root       string
	Bare       bool
	IndexStore *MemIndex
	ObjectDB   *MemObjectDB
	GitDir     string
	ExtraPath  string
	hasExtra   bool
}

// NewRepository builds a Repository with fresh, empty index/object
// stores.
func NewRepository(root string, bare bool, gitDir string) *Repository {
	return &Repository{
		Root:       root,
		Bare:       bare,
		IndexStore: NewMemIndex(),
		ObjectDB:   NewMemObjectDB(),
		GitDir:     gitDir,
	}
}

// SetAttributesExtraPath configures the core.attributesfile-equivalent
// extra attributes path.
func (r *Repository) SetAttributesExtraPath(p string) {
	r.ExtraPath = p
	r.hasExtra = p != ""
}

// Workdir implements gitattr.Repository.
func (r *Repository) Workdir() (string, bool) {
	if r.Bare {
		return "", false
	}
	return r.Root, true
}

// IsBare implements gitattr.Repository.
func (r *Repository) IsBare() bool { return r.Bare }

// Index implements gitattr.Repository.
func (r *Repository) Index() gitattr.Index { return r.IndexStore }

// CommitTreeEntry implements gitattr.Repository.
func (r *Repository) CommitTreeEntry(commitID, p string) ([]byte, string, error) {
	return r.ObjectDB.Get(commitID, p)
}

// ItemPath implements gitattr.Repository.
func (r *Repository) ItemPath(item gitattr.RepoItem) (string, error) {
	switch item {
	case gitattr.ItemInfo:
		return path.Join(r.GitDir, "info"), nil
	default:
		return "", fmt.Errorf("%w: unknown repository item", gitattr.ErrInvalidArgument)
	}
}

// AttributesExtraPath implements gitattr.Repository.
func (r *Repository) AttributesExtraPath() (string, bool) {
	return r.ExtraPath, r.hasExtra
}
