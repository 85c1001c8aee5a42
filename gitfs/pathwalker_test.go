// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitfs

import (
	"reflect"
	"testing"
)

func TestOSPathWalkerWalkUpToRoot(t *testing.T) {
	t.Parallel()

	var visited []string
	OSPathWalker{}.WalkUp("a/b/c", "", func(dir string) bool {
		visited = append(visited, dir)
		return true
	})

	want := []string{"a/b/c", "a/b", "a", ""}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
}

func TestOSPathWalkerStopsAtBoundedRoot(t *testing.T) {
	t.Parallel()

	var visited []string
	OSPathWalker{}.WalkUp("a/b/c", "a", func(dir string) bool {
		visited = append(visited, dir)
		return true
	})

	want := []string{"a/b/c", "a/b", "a"}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
}

func TestOSPathWalkerEarlyStop(t *testing.T) {
	t.Parallel()

	var visited []string
	OSPathWalker{}.WalkUp("a/b/c", "", func(dir string) bool {
		visited = append(visited, dir)
		return dir != "a/b"
	})

	want := []string{"a/b/c", "a/b"}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
}

func TestOSPathWalkerRootStart(t *testing.T) {
	t.Parallel()

	var visited []string
	OSPathWalker{}.WalkUp("", "", func(dir string) bool {
		visited = append(visited, dir)
		return true
	})

	want := []string{""}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
}
