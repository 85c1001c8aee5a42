// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSessionCacheSize = 64

// sessionKey identifies one memoized Collector.Collect call within a
// Session (spec.md §4.6's "memo keyed by (path, flags)").
type sessionKey struct {
	path  string
	flags Flags
}

// Session bundles the per-operation scratch state spec.md §4.6
// describes: a memoized system-file path, a "setup done" flag, and a
// bounded LRU of collected file vectors. A Session must be used by at
// most one goroutine at a time (spec §5); it is not a concurrency
// primitive.
type Session struct {
	collector *Collector
	resolver  *Resolver

	setupDone bool
	sysPath   string
	sysPathOK bool

	files *lru.Cache[sessionKey, []*AttrFile]
}

// NewSession builds a Session over collector/resolver with a bounded
// memo of the last n collected file vectors (SUPPLEMENTED FEATURES item
// 3, grounded on attr.c's git_attr_session).
func NewSession(collector *Collector, resolver *Resolver, size int) (*Session, error) {
	if size <= 0 {
		size = defaultSessionCacheSize
	}

	cache, err := lru.New[sessionKey, []*AttrFile](size)
	if err != nil {
		return nil, fmt.Errorf("gitattr: new session cache: %w", err)
	}

	return &Session{collector: collector, resolver: resolver, files: cache}, nil
}

// systemPath resolves and memoizes the system attributes file path,
// consulting the Collector's resolver only on the first call per
// Session (mirrors attr.c's init_sysdir/system_attr_file with a
// non-nil attr_session). Session.collect passes this in place of the
// Collector's own unmemoized sysPath, so a Session performing many
// queries only resolves the system path once.
func (s *Session) systemPath() (string, bool) {
	if !s.setupDone {
		s.sysPath, s.sysPathOK = s.collector.sysPath()
		s.setupDone = true
	}

	return s.sysPath, s.sysPathOK
}

// collect returns the ordered file vector for (path, flags), served
// from the session's LRU when present.
func (s *Session) collect(ctx context.Context, q Query, path string) ([]*AttrFile, error) {
	key := sessionKey{path: path, flags: q.Flags}

	if files, ok := s.files.Get(key); ok {
		return files, nil
	}

	files, err := s.collector.collect(ctx, q, path, s.systemPath)
	if err != nil {
		return nil, err
	}

	s.files.Add(key, files)
	return files, nil
}

// Get resolves a single attribute at path within this session, reusing
// a memoized file vector when available.
func (s *Session) Get(ctx context.Context, q Query, path, name string) (AttributeValue, error) {
	if name == "" {
		return Unspecified, ErrInvalidArgument
	}

	norm := normalizePath(path)
	if norm == "" {
		return Unspecified, nil
	}

	files, err := s.collect(ctx, q, norm)
	if err != nil {
		return Unspecified, err
	}

	return s.resolver.getFromFiles(ctx, files, norm, name)
}

// GetMany resolves several attributes at path within this session.
func (s *Session) GetMany(ctx context.Context, q Query, path string, names []string) ([]AttributeValue, error) {
	if len(names) == 0 {
		return nil, nil
	}

	norm := normalizePath(path)
	if norm == "" {
		return make([]AttributeValue, len(names)), nil
	}

	files, err := s.collect(ctx, q, norm)
	if err != nil {
		return nil, err
	}

	return s.resolver.getManyFromFiles(ctx, files, norm, names)
}

// ForEach enumerates attributes at path within this session.
func (s *Session) ForEach(ctx context.Context, q Query, path string, callback func(name string, value AttributeValue) error) error {
	norm := normalizePath(path)
	if norm == "" {
		return nil
	}

	files, err := s.collect(ctx, q, norm)
	if err != nil {
		return err
	}

	return s.resolver.forEachFromFiles(ctx, files, norm, callback)
}

// Flush drops the session's memoized file vectors and setup state. It
// does not touch the underlying Cache.
func (s *Session) Flush() {
	s.files.Purge()
	s.setupDone = false
}
