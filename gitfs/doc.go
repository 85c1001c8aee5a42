// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

// Package gitfs provides default, OS-backed implementations of the
// external collaborators gitattr's core consumes: Repository,
// FileSystem, and PathWalker, plus a minimal in-memory Index and commit
// blob reader. These are consumers of the core, not part of it
// (spec.md §1's explicit exclusion of the object model and working-tree
// path layer) — but a library with only interface types cannot be
// exercised end to end, so one concrete adapter ships here.
package gitfs
