// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitfs

import "strings"

// OSPathWalker walks ancestor directories of a slash-separated,
// repository-relative path, yielding each directory from start up to
// and including root (spec.md §6, §9's path-walk-as-iterator note).
type OSPathWalker struct{}

// WalkUp calls fn for start and each ancestor up to root, inclusive.
// root="" means the repository root; iteration stops early if fn
// returns false.
func (OSPathWalker) WalkUp(start, root string, fn func(dir string) bool) {
	dir := start

	for {
		if !fn(dir) {
			return
		}

		if dir == root {
			return
		}

		idx := strings.LastIndexByte(dir, '/')
		if idx < 0 {
			if root == "" && dir != "" {
				if !fn("") {
					return
				}
			}
			return
		}

		dir = dir[:idx]
	}
}
