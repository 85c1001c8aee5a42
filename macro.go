// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "sync"

// macroTable is the process-wide (per-Cache) mapping from macro name to
// its defining Rule. Written only while parsing a trusted source;
// read on every rule match during resolution (spec.md §3, §5).
type macroTable struct {
	mu    sync.RWMutex
	rules map[string]*Rule
}

func newMacroTable() *macroTable {
	return &macroTable{rules: make(map[string]*Rule)}
}

// insert registers or replaces macro rules parsed from a trusted
// source. Later definitions of the same name win, matching AttrFile
// rule precedence within a single trusted parse.
func (t *macroTable) insert(rules []*Rule) {
	if len(rules) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range rules {
		t.rules[r.MacroName] = r
	}
}

// lookup returns the Rule registered for name, if any.
func (t *macroTable) lookup(name string) (*Rule, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.rules[name]
	return r, ok
}
