// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"k8s.io/klog/v2"
)

const attributesFileName = ".gitattributes"

// Collector produces the ordered file vector spec.md §4.4 describes: for
// a query path, the AttrFiles from every applicable source, highest to
// lowest precedence.
type Collector struct {
	repo    Repository
	fs      FileSystem
	walker  PathWalker
	cache   *Cache
	log     klog.Logger
	sysPath sysPathFunc
}

// sysPathFunc resolves the system-wide attributes file path, or false
// if none is configured. Session.systemPath wraps this with per-session
// memoization (spec §4.6, SUPPLEMENTED FEATURES item 3).
type sysPathFunc func() (string, bool)

// NewCollector builds a Collector over the given collaborators. sysPath
// resolves the system attributes file location; pass a function
// returning ("", false) when there is none.
func NewCollector(repo Repository, fs FileSystem, walker PathWalker, cache *Cache, sysPath sysPathFunc, logger klog.Logger) *Collector {
	if logger.GetSink() == nil {
		logger = klog.Background()
	}

	return &Collector{repo: repo, fs: fs, walker: walker, cache: cache, sysPath: sysPath, log: logger}
}

// Preload warms the Cache for the four always-trusted, macro-bearing
// sources (system file, extra file, info file, worktree-root file)
// before any per-directory walk runs, so macros defined in any of them
// are visible to every rule matched afterward (SUPPLEMENTED FEATURES
// item 1, grounded on attr.c's attr_setup/preload_attr_file).
func (c *Collector) Preload(ctx context.Context, q Query) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w", ErrCancelled)
	}

	for _, src := range c.trustedSources(q) {
		probeSig, readBytes := c.fetchersFor(src)
		if _, err := c.cache.Get(src, true, probeSig, readBytes); err != nil && !isNotFound(err) {
			return err
		}
	}

	return nil
}

// trustedSources returns the info file, extra file, and system file
// sources, plus the worktree-root .gitattributes file when present —
// the four sources macros are ever trusted from (spec §4.3).
func (c *Collector) trustedSources(q Query) []Source {
	var out []Source

	if infoDir, err := c.repo.ItemPath(ItemInfo); err == nil {
		out = append(out, Source{Kind: SourceInfo, Name: joinRel(infoDir, "attributes")})
	}

	if extra, ok := c.repo.AttributesExtraPath(); ok {
		out = append(out, Source{Kind: SourceInfo, Name: extra})
	}

	if !q.Flags.has(NoSystem) {
		if sys, ok := c.sysPath(); ok {
			out = append(out, Source{Kind: SourceSystem, Name: sys})
		}
	}

	if _, ok := c.repo.Workdir(); ok {
		out = append(out, Source{Kind: SourceWorktree, Dir: "", Name: attributesFileName})
	}

	return out
}

// Collect assembles the ordered []*AttrFile for queryPath, from highest
// to lowest precedence: info file, per-directory files walking upward,
// extra file, system file (spec §4.4).
func (c *Collector) Collect(ctx context.Context, q Query, queryPath string) ([]*AttrFile, error) {
	return c.collect(ctx, q, queryPath, c.sysPath)
}

// collect is Collect's implementation, parameterized over how the
// system-wide attributes file path is resolved. Session.collect passes
// its own memoized resolver here instead of c.sysPath, so a Session
// doing many queries consults the system path once rather than on every
// Collect (spec §4.6's "setup done" responsibility).
func (c *Collector) collect(ctx context.Context, q Query, queryPath string, sysPath sysPathFunc) ([]*AttrFile, error) {
	queryPath = normalizePath(queryPath)

	var out []*AttrFile

	if infoDir, err := c.repo.ItemPath(ItemInfo); err == nil {
		af, err := c.load(Source{Kind: SourceInfo, Name: joinRel(infoDir, "attributes")}, true)
		if err != nil {
			return nil, err
		}
		if af != nil {
			out = append(out, af)
		}
	}

	files, err := c.collectPerDirectory(ctx, q, queryPath)
	if err != nil {
		return nil, err
	}
	out = append(out, files...)

	if extra, ok := c.repo.AttributesExtraPath(); ok {
		af, err := c.load(Source{Kind: SourceInfo, Name: extra}, true)
		if err != nil {
			return nil, err
		}
		if af != nil {
			out = append(out, af)
		}
	}

	if !q.Flags.has(NoSystem) {
		if sys, ok := sysPath(); ok {
			af, err := c.load(Source{Kind: SourceSystem, Name: sys}, true)
			if err != nil {
				return nil, err
			}
			if af != nil {
				out = append(out, af)
			}
		}
	}

	return out, nil
}

// collectPerDirectory walks from queryPath's directory up to the
// work-tree root (or, for a bare repository, contributes nothing),
// loading the file/index/HEAD sources selected by flags at each level.
func (c *Collector) collectPerDirectory(ctx context.Context, q Query, queryPath string) ([]*AttrFile, error) {
	if c.repo.IsBare() {
		return nil, nil
	}

	if _, ok := c.repo.Workdir(); !ok {
		return nil, nil
	}

	startDir := path.Clean("/" + pathDir(queryPath))
	startDir = strings.TrimPrefix(startDir, "/")

	var out []*AttrFile
	var walkErr error

	c.walker.WalkUp(startDir, "", func(dir string) bool {
		if err := ctx.Err(); err != nil {
			walkErr = fmt.Errorf("%w", ErrCancelled)
			return false
		}

		allowMacros := dir == ""

		files, err := c.filesAt(q, dir, allowMacros)
		if err != nil {
			walkErr = err
			return false
		}

		out = append(out, files...)
		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return out, nil
}

// filesAt loads the sources selected by flags for one directory level,
// in the order the flags dictate, with HEAD (if requested) always
// appended last (spec §9's observed, adopted ordering). allowMacros
// applies to the working-tree file only; index and commit blobs never
// register macros.
func (c *Collector) filesAt(q Query, dir string, allowMacros bool) ([]*AttrFile, error) {
	var out []*AttrFile

	loadOne := func(src Source) error {
		af, err := c.load(src, allowMacros && src.Kind == SourceWorktree)
		if err != nil {
			return err
		}
		if af != nil {
			out = append(out, af)
		}
		return nil
	}

	fileSrc := Source{Kind: SourceWorktree, Dir: dir, Name: attributesFileName}
	indexSrc := Source{Kind: SourceIndex, Dir: dir, Name: attributesFileName}

	switch q.Flags.order() {
	case IndexOnly:
		if err := loadOne(indexSrc); err != nil {
			return nil, err
		}
	case IndexThenFile:
		if err := loadOne(indexSrc); err != nil {
			return nil, err
		}
		if err := loadOne(fileSrc); err != nil {
			return nil, err
		}
	default: // FileThenIndex
		if err := loadOne(fileSrc); err != nil {
			return nil, err
		}
		if err := loadOne(indexSrc); err != nil {
			return nil, err
		}
	}

	if q.Flags.has(IncludeHead) {
		headSrc := Source{Kind: SourceCommit, Dir: dir, Name: attributesFileName, CommitID: "HEAD"}
		if err := loadOne(headSrc); err != nil {
			return nil, err
		}
	}

	if q.Flags.has(IncludeCommit) && q.CommitID != "" {
		commitSrc := Source{Kind: SourceCommit, Dir: dir, Name: attributesFileName, CommitID: q.CommitID}
		if err := loadOne(commitSrc); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// load fetches src from the Cache, treating ErrNotFound as "no
// contribution" (spec §4.4, §7's collection-absorption policy) rather
// than propagating it. Any other error short-circuits the walk.
func (c *Collector) load(src Source, allowMacros bool) (*AttrFile, error) {
	probeSig, readBytes := c.fetchersFor(src)

	af, err := c.cache.Get(src, allowMacros, probeSig, readBytes)
	if err != nil {
		if isNotFound(err) {
			c.log.V(5).Info("attribute source absent", "source", src.describe())
			return nil, nil
		}
		return nil, err
	}

	return af, nil
}

// fetchersFor returns the Cache probe/read pair appropriate for src's
// kind. For SourceWorktree/SourceSystem/SourceInfo these are two
// genuinely independent, cheap-then-expensive filesystem calls (Stat,
// then ReadFile), so a Cache hit never pays for a read. Index and
// commit sources have no separate cheap-signature call on the
// Repository/Index interfaces — Entry and CommitTreeEntry return data
// and oid together — so the pair here memoizes that single underlying
// call behind a closure instead of invoking it twice.
func (c *Collector) fetchersFor(src Source) (probe, read) {
	switch src.Kind {
	case SourceIndex, SourceCommit:
		var data []byte
		var oid string
		var fetchErr error
		var fetched bool

		fetch := func(s Source) {
			if fetched {
				return
			}
			fetched = true
			if s.Kind == SourceIndex {
				data, oid, fetchErr = c.repo.Index().Entry(s.path())
			} else {
				data, oid, fetchErr = c.repo.CommitTreeEntry(s.CommitID, s.path())
			}
		}

		return func(s Source) (string, error) {
				fetch(s)
				return oid, fetchErr
			}, func(s Source) ([]byte, error) {
				fetch(s)
				return data, fetchErr
			}
	default: // SourceWorktree, SourceSystem, SourceInfo
		return func(s Source) (string, error) {
				return c.fs.Stat(s.path())
			}, func(s Source) ([]byte, error) {
				return c.fs.ReadFile(s.path())
			}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
