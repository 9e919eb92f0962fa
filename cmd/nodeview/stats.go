package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nodeview/internal/fixture"
	"nodeview/internal/node"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <tree.toml|directory>...",
	Short: "Count nodes per kind across tree files",
	Long:  `Stats loads tree files (directories are scanned for *.toml) and reports per-kind node counts`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

type statsResult struct {
	Path  string
	Total int
	Kinds map[node.Kind]int
}

func runStats(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	files, err := collectTreeFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no tree files found")
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Per-goroutine result slots; no mutex needed.
	results := make([]statsResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := fileStats(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if err == context.Canceled {
			return nil
		}
		return err
	}

	printStats(cmd, results)
	return nil
}

// collectTreeFiles expands directory arguments into their *.toml files, in
// deterministic order.
func collectTreeFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".toml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func fileStats(path string) (statsResult, error) {
	tree, err := fixture.Load(path)
	if err != nil {
		return statsResult{}, err
	}

	res := statsResult{Path: path, Kinds: make(map[node.Kind]int)}
	var walk func(n node.Node)
	walk = func(n node.Node) {
		res.Total++
		res.Kinds[n.Kind()]++
		for _, child := range node.Children(n) {
			walk(child)
		}
	}
	for _, root := range tree.Roots {
		walk(root)
	}
	return res, nil
}

func printStats(cmd *cobra.Command, results []statsResult) {
	pathColor := color.New(color.FgCyan, color.Bold)
	pathColor.DisableColor()
	if useColor(cmd, os.Stdout) {
		pathColor.EnableColor()
	}

	grand := 0
	totals := make(map[node.Kind]int)
	for _, res := range results {
		fmt.Printf("%s: %d nodes\n", pathColor.Sprint(res.Path), res.Total)
		for _, kind := range sortedKinds(res.Kinds) {
			fmt.Printf("  %-8s %d\n", kind, res.Kinds[kind])
			totals[kind] += res.Kinds[kind]
		}
		grand += res.Total
	}

	if len(results) > 1 {
		fmt.Printf("total: %d nodes in %d files\n", grand, len(results))
		for _, kind := range sortedKinds(totals) {
			fmt.Printf("  %-8s %d\n", kind, totals[kind])
		}
	}
}

func sortedKinds(counts map[node.Kind]int) []node.Kind {
	kinds := make([]node.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
