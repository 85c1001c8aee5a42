// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/kroniwo/gitattr"
	"github.com/kroniwo/gitattr/gitfs"
)

func newTestSession(t *testing.T, root string) *gitattr.Session {
	t.Helper()

	repo := gitfs.NewRepository(root, false, filepath.Join(root, ".git"))
	fs := gitfs.NewOSFileSystem(root)
	cache := gitattr.NewCache(klog.Background())
	noSys := func() (string, bool) { return "", false }
	collector := gitattr.NewCollector(repo, fs, gitfs.OSPathWalker{}, cache, noSys, klog.Background())
	resolver := gitattr.NewResolver(collector, cache, boolConfig(false))

	s, err := gitattr.NewSession(collector, resolver, 8)
	require.NoError(t, err)
	return s
}

func TestSessionGetMemoizesFileVector(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitattributes"), "*.c diff=cpp\n")

	s := newTestSession(t, root)
	ctx := context.Background()

	v1, err := s.Get(ctx, gitattr.Query{}, "a.c", "diff")
	require.NoError(t, err)
	require.Equal(t, gitattr.StringValue("cpp"), v1)

	v2, err := s.Get(ctx, gitattr.Query{}, "a.c", "diff")
	require.NoError(t, err)
	require.Equal(t, v1, v2)
}

func TestSessionFlushClearsMemo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitattributes"), "*.c diff=cpp\n")

	s := newTestSession(t, root)
	ctx := context.Background()

	_, err := s.Get(ctx, gitattr.Query{}, "a.c", "diff")
	require.NoError(t, err)

	s.Flush()

	v, err := s.Get(ctx, gitattr.Query{}, "a.c", "diff")
	require.NoError(t, err)
	require.Equal(t, gitattr.StringValue("cpp"), v)
}

func TestSessionMemoizesSystemPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sysFile := filepath.Join(root, "etc-gitattributes")
	writeFile(t, sysFile, "*.md text\n")
	writeFile(t, filepath.Join(root, ".gitattributes"), "*.c diff=cpp\n")

	var resolves int32
	repo := gitfs.NewRepository(root, false, filepath.Join(root, ".git"))
	fs := gitfs.NewOSFileSystem(root)
	cache := gitattr.NewCache(klog.Background())
	countingSysPath := func() (string, bool) {
		atomic.AddInt32(&resolves, 1)
		return sysFile, true
	}
	collector := gitattr.NewCollector(repo, fs, gitfs.OSPathWalker{}, cache, countingSysPath, klog.Background())
	resolver := gitattr.NewResolver(collector, cache, boolConfig(false))

	s, err := gitattr.NewSession(collector, resolver, 8)
	require.NoError(t, err)
	ctx := context.Background()

	// Distinct paths miss the session's file-vector LRU, so each query
	// collects afresh and only the system-path memo can keep the count at 1.
	for _, p := range []string{"a.md", "b.md", "c.md"} {
		v, err := s.Get(ctx, gitattr.Query{}, p, "text")
		require.NoError(t, err)
		require.Equal(t, gitattr.True, v)
	}

	require.EqualValues(t, 1, atomic.LoadInt32(&resolves), "a session should resolve the system path once, not once per query")

	// A plain Collector.Collect call (no Session) consults sysPath on
	// every invocation, confirming the memoization is a Session-level
	// responsibility rather than something the Collector itself assumes.
	_, err = collector.Collect(ctx, gitattr.Query{}, "a.md")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&resolves))
}

func TestSessionFlushResetsSystemPathMemo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sysFile := filepath.Join(root, "etc-gitattributes")
	writeFile(t, sysFile, "*.md text\n")

	var resolves int32
	repo := gitfs.NewRepository(root, false, filepath.Join(root, ".git"))
	fs := gitfs.NewOSFileSystem(root)
	cache := gitattr.NewCache(klog.Background())
	countingSysPath := func() (string, bool) {
		atomic.AddInt32(&resolves, 1)
		return sysFile, true
	}
	collector := gitattr.NewCollector(repo, fs, gitfs.OSPathWalker{}, cache, countingSysPath, klog.Background())
	resolver := gitattr.NewResolver(collector, cache, boolConfig(false))

	s, err := gitattr.NewSession(collector, resolver, 8)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, gitattr.Query{}, "a.md", "text")
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&resolves))

	s.Flush()

	_, err = s.Get(ctx, gitattr.Query{}, "a.md", "text")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&resolves), "Flush should reset the memoized system path so it is resolved again")
}

func TestSessionGetManyAndForEach(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitattributes"), "*.c diff=cpp text\n")

	s := newTestSession(t, root)
	ctx := context.Background()

	values, err := s.GetMany(ctx, gitattr.Query{}, "a.c", []string{"diff", "text", "binary"})
	require.NoError(t, err)
	require.Equal(t, []gitattr.AttributeValue{
		gitattr.StringValue("cpp"), gitattr.True, gitattr.Unspecified,
	}, values)

	seen := map[string]gitattr.AttributeValue{}
	err = s.ForEach(ctx, gitattr.Query{}, "a.c", func(name string, value gitattr.AttributeValue) error {
		seen[name] = value
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, gitattr.StringValue("cpp"), seen["diff"])
	require.Equal(t, gitattr.True, seen["text"])
}
