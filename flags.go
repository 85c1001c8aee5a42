// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

// Flags controls source-order and inclusion behavior for a query
// (spec.md §6).
type Flags uint32

const (
	// sourceOrderMask isolates the mutually exclusive low two bits.
	sourceOrderMask Flags = 0x3

	// FileThenIndex loads the working-tree file before the index blob
	// at each directory. This is the default when no order bit is set.
	FileThenIndex Flags = 0
	// IndexThenFile loads the index blob before the working-tree file
	// at each directory.
	IndexThenFile Flags = 1
	// IndexOnly loads only the index blob at each directory.
	IndexOnly Flags = 2

	// NoSystem skips the system-wide attributes file.
	NoSystem Flags = 1 << 2
	// IncludeHead additionally consults the HEAD commit's blob at each
	// directory, appended after the file/index sources for that level.
	IncludeHead Flags = 1 << 3
	// IncludeCommit additionally consults an arbitrary commit's blob,
	// supplied out of band via Query.CommitID.
	IncludeCommit Flags = 1 << 4
)

// order returns the source-order selector, masking off the unrelated
// bits.
func (f Flags) order() Flags { return f & sourceOrderMask }

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Query bundles a Flags value with the out-of-band commit id needed
// when IncludeCommit is set.
type Query struct {
	Flags    Flags
	CommitID string
}
