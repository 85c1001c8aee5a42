// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

/*
Package gitattr resolves versioned path attributes from a layered set of
gitattributes-style rule files.

Given a path inside a working tree (or a bare repository) it answers
questions like "does src/foo.c have diff=cpp, and is it binary?" by
walking an ordered set of attribute files gathered from several
storage backends: working-tree files, index blobs, committed blobs, a
system-wide file, a per-repository info file, and a configured extra
file.

Basic flow:
  - parse one attribute file's bytes with ParseAttrFile
  - gather the ordered files for a path with a Collector, backed by a
    shared Cache
  - resolve one or more attributes with a Resolver's Get/GetMany/ForEach
  - reuse a Session across a bulk operation to amortize setup

The repository, index, filesystem, and path-walk contracts this package
consumes are defined here as interfaces (Repository, Index, FileSystem,
PathWalker); package gitfs ships one concrete implementation of each,
OS-backed for the filesystem and in-memory for the index and commit
blobs.
*/
package gitattr
