// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheGetParsesAndCaches(t *testing.T) {
	t.Parallel()

	var probes, reads int32

	probeSig := func(Source) (string, error) {
		atomic.AddInt32(&probes, 1)
		return "sig-1", nil
	}
	readBytes := func(Source) ([]byte, error) {
		atomic.AddInt32(&reads, 1)
		return []byte("*.c diff=cpp\n"), nil
	}

	c := NewCache(testLogger())
	src := Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}

	af1, err := c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	require.Len(t, af1.Rules, 1)

	af2, err := c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	require.Same(t, af1, af2, "unchanged signature should return the cached AttrFile")
	require.EqualValues(t, 2, atomic.LoadInt32(&probes), "the signature is probed on every call")
	require.EqualValues(t, 1, atomic.LoadInt32(&reads), "a fresh signature should not trigger a re-read")
}

func TestCacheGetReparsesOnSignatureChange(t *testing.T) {
	t.Parallel()

	sig := "sig-1"
	probeSig := func(Source) (string, error) { return sig, nil }
	readBytes := func(Source) ([]byte, error) { return []byte("*.c diff=cpp\n"), nil }

	c := NewCache(testLogger())
	src := Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}

	af1, err := c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)

	sig = "sig-2"
	af2, err := c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	require.NotSame(t, af1, af2, "changed signature should trigger a reparse")
}

func TestCacheNegativeEntryAvoidsRestat(t *testing.T) {
	t.Parallel()

	var probes int32
	probeSig := func(Source) (string, error) {
		atomic.AddInt32(&probes, 1)
		return "", fmt.Errorf("%w: missing", ErrNotFound)
	}
	readBytes := func(Source) ([]byte, error) {
		t.Fatalf("readBytes should never be called for a missing source")
		return nil, nil
	}

	c := NewCache(testLogger())
	src := Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}

	_, err := c.Get(src, false, probeSig, readBytes)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get(src, false, probeSig, readBytes)
	require.ErrorIs(t, err, ErrNotFound)

	require.EqualValues(t, 1, atomic.LoadInt32(&probes), "a negative entry should not re-stat")
}

func TestCacheFlushForcesReload(t *testing.T) {
	t.Parallel()

	var probes, reads int32
	probeSig := func(Source) (string, error) {
		atomic.AddInt32(&probes, 1)
		return "sig", nil
	}
	readBytes := func(Source) ([]byte, error) {
		atomic.AddInt32(&reads, 1)
		return []byte("*.c diff=cpp\n"), nil
	}

	c := NewCache(testLogger())
	src := Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}

	_, err := c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	_, err = c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&probes))
	require.EqualValues(t, 1, atomic.LoadInt32(&reads))

	c.Flush()

	_, err = c.Get(src, false, probeSig, readBytes)
	require.NoError(t, err)
	require.EqualValues(t, 3, atomic.LoadInt32(&probes))
	require.EqualValues(t, 2, atomic.LoadInt32(&reads), "Flush should force the unchanged source to be read again")
}

func TestCacheGetConcurrentSingleFlight(t *testing.T) {
	t.Parallel()

	var reads int32
	release := make(chan struct{})

	probeSig := func(Source) (string, error) { return "sig", nil }
	readBytes := func(Source) ([]byte, error) {
		atomic.AddInt32(&reads, 1)
		<-release
		return []byte("*.c diff=cpp\n"), nil
	}

	c := NewCache(testLogger())
	src := Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(src, false, probeSig, readBytes)
		}(i)
	}

	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&reads), "concurrent Get calls on the same key should share one read+parse")
}

func TestCacheAddMacroAndLookup(t *testing.T) {
	t.Parallel()

	c := NewCache(testLogger())
	require.NoError(t, c.AddMacro("binary", "-text -diff"))

	rule, ok := c.Macro("binary")
	require.True(t, ok)
	require.Len(t, rule.Assignments, 2)

	err := c.AddMacro("", "-text")
	require.True(t, errors.Is(err, ErrInvalidArgument))
}
