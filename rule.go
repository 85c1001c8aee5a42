// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"hash/fnv"
	"sort"
	"strings"
)

// Assignment binds one attribute name to one value. Names are ASCII,
// dot-, dash-, and underscore-containing; matching is case-sensitive.
type Assignment struct {
	Name     string
	NameHash uint32
	Value    AttributeValue
}

// hashName computes the 32-bit FNV-1a hash spec.md §3 requires be
// precomputed once per assignment for fast rule scanning.
func hashName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// Rule is a Pattern plus its ordered, sorted-and-deduplicated list of
// attribute assignments, or (when MacroName is non-empty) a macro
// definition's assignment bundle with no matchable pattern of its own.
type Rule struct {
	Pattern     *Pattern
	Assignments []Assignment
	MacroName   string
}

// newRule builds a Rule from assignments parsed in file order, sorting
// by (NameHash, Name) and keeping the last occurrence of any duplicate
// name, per spec.md §3's "sorted and deduplicated at parse time".
func newRule(pattern *Pattern, raw []Assignment) *Rule {
	return &Rule{Pattern: pattern, Assignments: sortAndDedupe(raw)}
}

func newMacroRule(name string, raw []Assignment) *Rule {
	return &Rule{MacroName: name, Assignments: sortAndDedupe(raw)}
}

func sortAndDedupe(raw []Assignment) []Assignment {
	if len(raw) == 0 {
		return nil
	}

	byName := make(map[string]Assignment, len(raw))
	for _, a := range raw {
		byName[a.Name] = a
	}

	out := make([]Assignment, 0, len(byName))
	for _, a := range byName {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].NameHash != out[j].NameHash {
			return out[i].NameHash < out[j].NameHash
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// find binary-searches the rule's sorted assignment list for name.
func (r *Rule) find(name string, hash uint32) (Assignment, bool) {
	n := len(r.Assignments)
	i := sort.Search(n, func(i int) bool {
		a := r.Assignments[i]
		if a.NameHash != hash {
			return a.NameHash >= hash
		}
		return a.Name >= name
	})

	if i < n && r.Assignments[i].NameHash == hash && r.Assignments[i].Name == name {
		return r.Assignments[i], true
	}

	return Assignment{}, false
}

// isValidAttributeName reports whether name is a legal attribute
// identifier: ASCII letters, digits, '.', '-', and '_'.
func isValidAttributeName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
		default:
			return false
		}
	}

	return true
}

// parseAssignment parses one whitespace-separated assignment token:
// "name" (TRUE), "-name" (FALSE), "!name" (UNSET), or "name=value" (STRING).
// It returns ok=false for malformed tokens, which the parser skips rather
// than failing (spec.md §4.2, §7: PARSE_ERROR never occurs).
func parseAssignment(tok string) (Assignment, bool) {
	if tok == "" {
		return Assignment{}, false
	}

	value := True
	name := tok

	switch {
	case strings.HasPrefix(tok, "-"):
		value = False
		name = tok[1:]
	case strings.HasPrefix(tok, "!"):
		value = Unset
		name = tok[1:]
	default:
		if eq := strings.IndexByte(tok, '='); eq >= 0 {
			name = tok[:eq]
			value = StringValue(tok[eq+1:])
		}
	}

	if !isValidAttributeName(name) {
		return Assignment{}, false
	}

	if value.Kind() == KindString && value.str == "" {
		return Assignment{}, false
	}

	return Assignment{Name: name, NameHash: hashName(name), Value: value}, true
}
