// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"bufio"
	"fmt"
	"strings"
)

const macroPrefix = "[attr]"

// AttrFile is the parsed contents of one attribute source: its rules in
// file order, any macro definitions accepted during the same parse, and
// a content signature used by the Cache to detect staleness.
//
// AttrFile is immutable once returned from ParseAttrFile; callers share
// it freely (spec.md §3's "the Cache never hands out mutable
// references").
type AttrFile struct {
	Source    Source
	Rules     []*Rule
	Macros    []*Rule
	Signature string
}

// ParseAttrFile parses raw attribute-file bytes into an AttrFile.
// allowMacros gates whether "[attr]name ..." lines register a macro
// definition; when false they are recognized syntactically but produce
// no Rule (spec.md §4.2, §4.3's trust rule).
func ParseAttrFile(source Source, raw []byte, sourceDir string, allowMacros bool, signature string) (*AttrFile, error) {
	af := &AttrFile{Source: source, Signature: signature}

	sc := bufio.NewScanner(strings.NewReader(string(raw)))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if name, rest, ok := cutMacroLine(trimmed); ok {
			assigns := parseAssignments(rest)
			if allowMacros && isValidAttributeName(name) {
				af.Macros = append(af.Macros, newMacroRule(name, assigns))
			}
			continue
		}

		patternText, rest, ok := splitFirstField(trimmed)
		if !ok {
			continue
		}

		pat, ok, err := CompilePattern(patternText, sourceDir)
		if err != nil {
			continue
		}
		if !ok {
			continue
		}

		assigns := parseAssignments(rest)
		if len(assigns) == 0 {
			continue
		}

		af.Rules = append(af.Rules, newRule(pat, assigns))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan attribute file %s: %v", ErrIOFailure, source.describe(), err)
	}

	return af, nil
}

// cutMacroLine reports whether line is a "[attr]name rest" macro
// definition, returning the macro name and the remaining assignment
// text.
func cutMacroLine(line string) (name, rest string, ok bool) {
	body, ok := strings.CutPrefix(line, macroPrefix)
	if !ok {
		return "", "", false
	}

	body = strings.TrimLeft(body, " \t")
	if body == "" {
		return "", "", false
	}

	name, rest, _ = splitFirstField(body)
	if name == "" {
		return "", "", false
	}

	return name, rest, true
}

// splitFirstField splits line on the first run of unescaped whitespace,
// returning the leading field and the rest of the line (with leading
// whitespace trimmed).
func splitFirstField(line string) (field, rest string, ok bool) {
	i := 0
	for i < len(line) {
		if line[i] == '\\' && i+1 < len(line) {
			i += 2
			continue
		}
		if line[i] == ' ' || line[i] == '\t' {
			break
		}
		i++
	}

	if i == 0 {
		return "", "", false
	}

	field = line[:i]
	rest = strings.TrimLeft(line[i:], " \t")
	return field, rest, true
}

// parseAssignments splits a whitespace-separated assignment list and
// parses each token, silently skipping malformed ones (spec.md §4.2:
// "the parser does not fail on malformed assignments").
func parseAssignments(s string) []Assignment {
	if s == "" {
		return nil
	}

	fields := strings.Fields(s)
	out := make([]Assignment, 0, len(fields))
	for _, f := range fields {
		if a, ok := parseAssignment(f); ok {
			out = append(out, a)
		}
	}

	return out
}
