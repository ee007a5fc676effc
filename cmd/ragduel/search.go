package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brunobiangulo/ragduel/retrieval"
)

func searchCmd() *cobra.Command {
	var strategy string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <question>",
		Short: "Run one retrieval strategy without generation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategy != retrieval.StrategyTraditional && strategy != retrieval.StrategyGraph {
				return fmt.Errorf("unknown strategy %q (want %s or %s)",
					strategy, retrieval.StrategyTraditional, retrieval.StrategyGraph)
			}
			engine, err := openEngine(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer engine.Close()

			res, err := engine.Search(cmd.Context(), strategy, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Printf("status: %s\n", res.Status)
			for _, item := range res.Items {
				fmt.Printf("  [%.2f] %s\n", item.Score, item.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", retrieval.StrategyTraditional,
		"retrieval strategy: traditional or graph")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	return cmd
}
