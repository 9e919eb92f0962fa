package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nodeview/internal/dump"
	"nodeview/internal/fixture"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <tree.toml>",
	Short: "Load a tree file and print its nodes",
	Long:  `Dump loads a TOML tree file and renders every root with its subtree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	dumpCmd.Flags().Bool("spans", false, "include node spans in pretty output")
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	spans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}

	tree, err := fixture.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}

	switch format {
	case "pretty":
		opts := dump.PrettyOpts{
			Color:    useColor(cmd, os.Stdout),
			ShowSpan: spans,
		}
		return dump.Pretty(os.Stdout, tree.Roots, opts)
	case "json":
		return dump.JSON(os.Stdout, tree.Roots)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
