// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

// Config is the external configuration collaborator (spec.md §1): this
// module consumes a core.ignorecase-style knob without defining where
// it comes from. The extra-attributes-file path (core.attributesfile)
// is surfaced through Repository.AttributesExtraPath instead, matching
// spec §6's collaborator contract verbatim.
type Config interface {
	// IgnoreCase reports whether pattern matching should fold ASCII
	// case (core.ignorecase).
	IgnoreCase() bool
}
