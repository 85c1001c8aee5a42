// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "testing"

func TestSourceKeyDistinguishesFields(t *testing.T) {
	t.Parallel()

	a := Source{Kind: SourceWorktree, Dir: "src", Name: ".gitattributes"}
	b := Source{Kind: SourceIndex, Dir: "src", Name: ".gitattributes"}
	c := Source{Kind: SourceWorktree, Dir: "other", Name: ".gitattributes"}

	if a.key() == b.key() {
		t.Fatalf("sources with different kinds must have different keys")
	}
	if a.key() == c.key() {
		t.Fatalf("sources with different dirs must have different keys")
	}
	if a.key() != (Source{Kind: SourceWorktree, Dir: "src", Name: ".gitattributes"}).key() {
		t.Fatalf("identical sources must produce identical keys")
	}
}

func TestSourcePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  Source
		want string
	}{
		{Source{Kind: SourceWorktree, Dir: "src", Name: ".gitattributes"}, "src/.gitattributes"},
		{Source{Kind: SourceWorktree, Dir: "", Name: ".gitattributes"}, ".gitattributes"},
		{Source{Kind: SourceSystem, Name: "/etc/gitattributes"}, "/etc/gitattributes"},
	}

	for _, tc := range cases {
		if got := tc.src.path(); got != tc.want {
			t.Errorf("path() = %q, want %q", got, tc.want)
		}
	}
}
