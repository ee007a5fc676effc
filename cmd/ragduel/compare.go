package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brunobiangulo/ragduel"
)

func compareCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "compare <question>",
		Short: "Run a question through both retrieval strategies and show the answers side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer engine.Close()

			cmp, err := engine.Compare(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cmp)
			}
			printComparison(cmp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full comparison as JSON")
	return cmd
}

func printComparison(cmp *ragduel.Comparison) {
	fmt.Printf("query: %s\n\n", cmp.Query)
	printBranch("TRADITIONAL (keyword overlap)", cmp.Traditional)
	fmt.Println()
	printBranch("GRAPH (entity traversal)", cmp.Graph)
	fmt.Printf("\nelapsed: %s\n", cmp.Elapsed)
}

func printBranch(title string, b ragduel.Branch) {
	fmt.Printf("=== %s ===\n", title)
	fmt.Printf("status: %s", b.Retrieval.Status)
	if b.Retrieval.Detail != "" {
		fmt.Printf(" (%s)", b.Retrieval.Detail)
	}
	fmt.Println()
	for _, item := range b.Retrieval.Items {
		fmt.Printf("  [%.2f] %s\n", item.Score, item.Text)
	}
	degraded := ""
	if b.Degraded {
		degraded = ", degraded"
	}
	fmt.Printf("answer (%s%s): %s\n", b.Backend, degraded, b.Answer)
}
