package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nodeview/internal/dump"
	"nodeview/internal/encode"
	"nodeview/internal/fixture"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] <tree.toml>",
	Short: "Serialize a tree file to a binary snapshot",
	Long:  `Snapshot loads a TOML tree file and writes it back out as a msgpack snapshot`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [flags] <file.nvs>",
	Short: "Read a binary snapshot and print its nodes",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "", "output path (default: input with .nvs extension)")
	restoreCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	if out == "" {
		out = strings.TrimSuffix(args[0], ".toml") + ".nvs"
	}

	tree, err := fixture.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}
	if err := encode.WriteFile(out, tree.Name, tree.Roots); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d nodes)\n", out, len(tree.Nodes))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	_, roots, err := encode.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	switch format {
	case "pretty":
		opts := dump.PrettyOpts{Color: useColor(cmd, os.Stdout)}
		return dump.Pretty(os.Stdout, roots, opts)
	case "json":
		return dump.JSON(os.Stdout, roots)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
