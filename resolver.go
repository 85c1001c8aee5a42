// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "context"

// Resolver walks a Collector-produced file vector to answer attribute
// queries (spec.md §4.5).
type Resolver struct {
	collector *Collector
	cache     *Cache
	config    Config
}

// NewResolver builds a Resolver over the given Collector, using cache
// for macro lookups at match time and config.IgnoreCase() to decide
// case folding (spec §4.1's "case sensitivity follows the filesystem's
// policy flag at match time").
func NewResolver(collector *Collector, cache *Cache, config Config) *Resolver {
	return &Resolver{collector: collector, cache: cache, config: config}
}

// Get resolves a single attribute at path, returning Unspecified if no
// rule assigns it.
func (r *Resolver) Get(ctx context.Context, q Query, path, name string) (AttributeValue, error) {
	if name == "" {
		return Unspecified, ErrInvalidArgument
	}

	norm := normalizePath(path)
	if norm == "" {
		return Unspecified, nil
	}

	files, err := r.collector.Collect(ctx, q, norm)
	if err != nil {
		return Unspecified, err
	}

	return r.getFromFiles(ctx, files, norm, name)
}

func (r *Resolver) getFromFiles(ctx context.Context, files []*AttrFile, path, name string) (AttributeValue, error) {
	hash := hashName(name)

	for _, af := range files {
		if err := ctx.Err(); err != nil {
			return Unspecified, ErrCancelled
		}

		for _, rule := range af.Rules {
			if !r.matches(rule, path) {
				continue
			}

			if rule.Pattern.Negate {
				if _, ok := r.lookupAssignment(rule, name, hash); ok {
					return Unspecified, nil
				}
				continue
			}

			if a, ok := r.lookupAssignment(rule, name, hash); ok {
				return a.Value, nil
			}
		}
	}

	return Unspecified, nil
}

// GetMany resolves several attributes at path in one walk, stopping
// early once every name has been resolved.
func (r *Resolver) GetMany(ctx context.Context, q Query, path string, names []string) ([]AttributeValue, error) {
	values := make([]AttributeValue, len(names))
	if len(names) == 0 {
		return values, nil
	}

	norm := normalizePath(path)
	if norm == "" {
		return values, nil
	}

	files, err := r.collector.Collect(ctx, q, norm)
	if err != nil {
		return nil, err
	}

	return r.getManyFromFiles(ctx, files, norm, names)
}

func (r *Resolver) getManyFromFiles(ctx context.Context, files []*AttrFile, path string, names []string) ([]AttributeValue, error) {
	values := make([]AttributeValue, len(names))

	hashes := make([]uint32, len(names))
	found := make([]bool, len(names))
	for i, n := range names {
		hashes[i] = hashName(n)
	}

	remaining := len(names)

	for _, af := range files {
		if remaining == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		for _, rule := range af.Rules {
			if remaining == 0 {
				break
			}
			if !r.matches(rule, path) {
				continue
			}

			for i, n := range names {
				if found[i] {
					continue
				}

				a, ok := r.lookupAssignment(rule, n, hashes[i])
				if !ok {
					continue
				}

				found[i] = true
				remaining--
				if !rule.Pattern.Negate {
					values[i] = a.Value
				}
			}
		}
	}

	return values, nil
}

// ForEach invokes callback once per distinct attribute name encountered
// while walking path's matching rules, highest precedence first. It
// stops when callback returns a non-nil error, wrapping that error with
// ErrCallbackAborted, or when the walk completes.
func (r *Resolver) ForEach(ctx context.Context, q Query, path string, callback func(name string, value AttributeValue) error) error {
	norm := normalizePath(path)
	if norm == "" {
		return nil
	}

	files, err := r.collector.Collect(ctx, q, norm)
	if err != nil {
		return err
	}

	return r.forEachFromFiles(ctx, files, norm, callback)
}

func (r *Resolver) forEachFromFiles(ctx context.Context, files []*AttrFile, path string, callback func(name string, value AttributeValue) error) error {
	seen := make(map[string]bool)

	for _, af := range files {
		if err := ctx.Err(); err != nil {
			return ErrCancelled
		}

		for _, rule := range af.Rules {
			if !r.matches(rule, path) {
				continue
			}

			for _, a := range r.expand(rule) {
				if seen[a.Name] {
					continue
				}
				seen[a.Name] = true

				value := a.Value
				if rule.Pattern.Negate {
					continue
				}

				if err := callback(a.Name, value); err != nil {
					return wrapCallbackErr(err)
				}
			}
		}
	}

	return nil
}

func wrapCallbackErr(err error) error {
	if err == nil {
		return nil
	}
	return &callbackError{cause: err}
}

type callbackError struct{ cause error }

func (e *callbackError) Error() string   { return "gitattr: callback aborted: " + e.cause.Error() }
func (e *callbackError) Unwrap() []error { return []error{ErrCallbackAborted, e.cause} }
func (e *callbackError) Cause() error    { return e.cause }

// matches reports whether rule's pattern matches path. Get/GetMany/
// ForEach only ever resolve attributes for a file path, so is_directory
// is always false here; DIRECTORY_ONLY patterns therefore never match
// through this path, matching spec §4.1's rule for file queries.
func (r *Resolver) matches(rule *Rule, path string) bool {
	return rule.Pattern.Matches(path, false, r.config != nil && r.config.IgnoreCase())
}

// lookupAssignment finds name's assignment on rule directly, or (if
// rule's pattern matched a macro invocation) within the macro's
// expanded assignment set.
func (r *Resolver) lookupAssignment(rule *Rule, name string, hash uint32) (Assignment, bool) {
	if a, ok := rule.find(name, hash); ok {
		return a, true
	}

	for _, a := range rule.Assignments {
		macro, ok := r.cache.Macro(a.Name)
		if !ok {
			continue
		}

		if ma, ok := macro.find(name, hash); ok {
			return ma, true
		}
	}

	return Assignment{}, false
}

// expand returns rule's assignments with any macro invocation's own
// assignments appended alongside it, at the same precedence level as the
// triggering rule (spec §4.5's macro-expansion-at-match-time rule). The
// macro-named assignment itself is kept, not replaced: a caller querying
// the macro name directly (e.g. Get(p, "binary")) must see the same
// entry ForEach walks past, matching attr.c's git_attr_foreach, whose
// fully-expanded assignment list still names the macro itself.
func (r *Resolver) expand(rule *Rule) []Assignment {
	out := make([]Assignment, 0, len(rule.Assignments))

	for _, a := range rule.Assignments {
		out = append(out, a)

		macro, ok := r.cache.Macro(a.Name)
		if !ok {
			continue
		}

		out = append(out, macro.Assignments...)
	}

	return out
}
