package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodeview/internal/explore"
	"nodeview/internal/fixture"
)

var exploreCmd = &cobra.Command{
	Use:   "explore <tree.toml>",
	Short: "Browse a tree file interactively",
	Long:  `Explore opens a terminal browser over a tree file: move with the arrow keys, descend with enter`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	tree, err := fixture.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load tree: %w", err)
	}
	name := tree.Name
	if name == "" {
		name = args[0]
	}
	return explore.Run(name, tree.Roots)
}
