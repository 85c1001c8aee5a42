// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"path"
	"strings"
)

// normalizePath normalizes a query path to slash-separated, relative,
// clean form. Backslashes are treated as path separators here (unlike
// in pattern text, where backslash is the escape character) since this
// normalizes the candidate being queried, not a rule.
func normalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, "/")
	}

	raw = strings.TrimPrefix(raw, "./")
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" {
		return ""
	}

	if isSimpleNormalizedPath(raw) {
		return raw
	}

	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}

	return strings.TrimSuffix(raw, "/")
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes
// unchanged, including non-ASCII UTF-8 sequences.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}

// isSimpleNormalizedPath reports whether p is already normalized enough
// to skip path.Clean.
func isSimpleNormalizedPath(p string) bool {
	if p == "" ||
		p == "." ||
		p == ".." ||
		strings.HasPrefix(p, "/") ||
		strings.HasSuffix(p, "/") ||
		strings.HasPrefix(p, "./") ||
		strings.HasPrefix(p, "../") ||
		strings.Contains(p, "//") ||
		strings.Contains(p, "/./") ||
		strings.Contains(p, "/../") ||
		strings.HasSuffix(p, "/..") {
		return false
	}

	return true
}

// pathBase returns the final slash-separated path component.
func pathBase(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}

	return p
}

// pathDir returns the slash-separated directory part of a path already
// known to be a file (not a directory) path.
func pathDir(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}

	return ""
}

// joinRel joins a base relative directory ("" for root) and a name into
// a single slash-separated relative path.
func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}

	return dir + "/" + name
}
