// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"
)

// entry is one Cache slot: either a live AttrFile with the signature it
// was parsed against, or a negative marker recording that the source
// did not exist as of the last check.
type entry struct {
	file      *AttrFile
	signature string
	negative  bool
}

// Cache is the keyed AttrFile store described in spec.md §4.3: content-
// signature staleness detection, per-key single-flight parsing, and
// negative-entry caching so repeated misses do not re-stat.
//
// A Cache is safe for concurrent use by multiple goroutines (spec §5).
// It owns the macro table, per attr.c's git_attr_cache__init/
// git_attr_cache__insert_macro split.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*entry
	group   singleflight.Group
	macros  *macroTable
	log     klog.Logger
}

// NewCache constructs an empty Cache. A nil logger defaults to
// klog.Background(), never a package-global logger.
func NewCache(logger klog.Logger) *Cache {
	if logger.GetSink() == nil {
		logger = klog.Background()
	}

	return &Cache{
		entries: make(map[cacheKey]*entry),
		macros:  newMacroTable(),
		log:     logger,
	}
}

// probe returns a Source's current content signature cheaply, without
// necessarily reading its full contents (a stat call, an index entry's
// already-known oid, or similar), or reports ErrNotFound if the source
// does not exist.
type probe func(Source) (signature string, err error)

// read returns a Source's raw bytes. Only called when probe's signature
// does not match what is cached, so a cache hit never pays for it.
type read func(Source) (data []byte, err error)

// Get returns the AttrFile for src, parsing it if the cached entry is
// missing or stale. allowMacros gates whether macro definitions found
// in this parse are registered in the shared macro table.
//
// probe is consulted on every call except one that finds a negative
// entry (which returns ErrNotFound at once); readBytes only runs when the
// signature is new or changed, so a cache hit never re-reads the
// source's contents (spec.md §4.3's staleness check must stay decoupled
// from reading the bytes).
//
// src.Kind == SourceBuffer bypasses the cache and both callbacks
// entirely (see Source.Buffer's doc comment).
func (c *Cache) Get(src Source, allowMacros bool, probeSig probe, readBytes read) (*AttrFile, error) {
	if src.Kind == SourceBuffer {
		af, err := ParseAttrFile(src, src.Buffer, src.Dir, allowMacros, "")
		if err != nil {
			return nil, err
		}
		c.macros.insert(af.Macros)
		return af, nil
	}

	key := src.key()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && e.negative {
		c.log.V(4).Info("attribute file negative cache hit", "source", src.describe())
		return nil, fmt.Errorf("%w: %s", ErrNotFound, src.describe())
	}

	result, err, _ := c.group.Do(fmt.Sprintf("%+v", key), func() (any, error) {
		sig, perr := probeSig(src)
		if perr != nil {
			if isNotFound(perr) {
				c.storeNegative(key)
			}
			return nil, perr
		}

		if ok && sig == e.signature {
			c.log.V(4).Info("attribute file cache hit", "source", src.describe())
			return e.file, nil
		}

		data, rerr := readBytes(src)
		if rerr != nil {
			if isNotFound(rerr) {
				c.storeNegative(key)
			}
			return nil, rerr
		}

		return c.reload(src, key, data, sig, allowMacros)
	})
	if err != nil {
		return nil, err
	}

	return result.(*AttrFile), nil
}

// reload parses freshly loaded bytes and publishes the result,
// replacing whatever was cached under key.
func (c *Cache) reload(src Source, key cacheKey, data []byte, sig string, allowMacros bool) (*AttrFile, error) {
	af, err := ParseAttrFile(src, data, src.Dir, allowMacros, sig)
	if err != nil {
		return nil, err
	}

	c.macros.insert(af.Macros)

	c.mu.Lock()
	c.entries[key] = &entry{file: af, signature: sig}
	c.mu.Unlock()

	c.log.V(4).Info("attribute file parsed", "source", src.describe(), "rules", len(af.Rules))

	return af, nil
}

func (c *Cache) storeNegative(key cacheKey) {
	c.mu.Lock()
	c.entries[key] = &entry{negative: true}
	c.mu.Unlock()
}

// Macro returns the Rule registered for a macro name, if any.
func (c *Cache) Macro(name string) (*Rule, bool) {
	return c.macros.lookup(name)
}

// AddMacro registers a macro definition directly, bypassing any source
// parse (the public add_macro operation, spec.md §6).
func (c *Cache) AddMacro(name, definition string) error {
	if !isValidAttributeName(name) {
		return fmt.Errorf("%w: invalid macro name %q", ErrInvalidArgument, name)
	}

	assigns := parseAssignments(definition)
	c.macros.insert([]*Rule{newMacroRule(name, assigns)})
	return nil
}

// Flush drops every cached entry, forcing the next Get for each source
// to reload and reparse (spec.md §4.3's explicit eviction operation).
// The macro table is not cleared: macros are additive process state,
// not per-source cache content.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]*entry)
	c.mu.Unlock()

	c.log.V(4).Info("attribute cache flushed")
}
