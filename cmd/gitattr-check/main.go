// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kroniwo/gitattr"
	"github.com/kroniwo/gitattr/gitfs"
)

// flagConfig implements gitattr.Config over the --ignore-case flag; a
// real embedder would back this with its own config stack instead
// (spec §1 excludes the configuration subsystem from the core itself).
type flagConfig struct{ ignoreCase bool }

func (c flagConfig) IgnoreCase() bool { return c.ignoreCase }

func main() {
	root := newRootCmd()
	root.AddCommand(newAddMacroCmd(), newFlushCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAddMacroCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-macro <name> <assignment>...",
		Short: "Register a macro definition for this process's cache",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := gitattr.NewCache(klog.Background())
			definition := ""
			for _, a := range args[1:] {
				definition += a + " "
			}
			return cache.AddMacro(args[0], definition)
		},
	}
}

func newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Flush the attribute cache (demonstrates the cache_flush operation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			gitattr.NewCache(klog.Background()).Flush()
			return nil
		},
	}
}

func newRootCmd() *cobra.Command {
	var (
		noSystem    bool
		includeHead bool
		indexOnly   bool
		ignoreCase  bool
	)

	cmd := &cobra.Command{
		Use:   "gitattr-check <path> <attr>...",
		Short: "Report resolved gitattributes values for a path",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			names := args[1:]

			root, err := os.Getwd()
			if err != nil {
				return err
			}

			repo := gitfs.NewRepository(root, false, filepath.Join(root, ".git"))
			fs := gitfs.NewOSFileSystem(root)

			cache := gitattr.NewCache(klog.Background())
			collector := gitattr.NewCollector(repo, fs, gitfs.OSPathWalker{}, cache, systemAttrPath, klog.Background())
			resolver := gitattr.NewResolver(collector, cache, flagConfig{ignoreCase: ignoreCase})

			var flags gitattr.Flags
			if indexOnly {
				flags |= gitattr.IndexOnly
			}
			if noSystem {
				flags |= gitattr.NoSystem
			}
			if includeHead {
				flags |= gitattr.IncludeHead
			}

			values, err := resolver.GetMany(context.Background(), gitattr.Query{Flags: flags}, path, names)
			if err != nil {
				return fmt.Errorf("resolve attributes for %s: %w", path, err)
			}

			for i, name := range names {
				fmt.Printf("%s: %s: %s\n", path, name, values[i].String())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noSystem, "no-system", false, "skip the system attributes file")
	cmd.Flags().BoolVar(&includeHead, "include-head", false, "also consult HEAD's blob at each directory")
	cmd.Flags().BoolVar(&indexOnly, "index-only", false, "consult only the index, never the working tree")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "fold ASCII case during pattern matching")

	return cmd
}

// systemAttrPath resolves the conventional system-wide attributes file
// location. Absent on most CI runners, which is fine: a missing system
// file is "no contribution", not an error (spec §4.4).
func systemAttrPath() (string, bool) {
	const p = "/etc/gitattributes"
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}
