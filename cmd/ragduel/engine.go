package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/brunobiangulo/ragduel"
)

// openEngine loads config (from --config plus environment) and builds the
// engine. Callers must Close it.
func openEngine(ctx context.Context, cmd *cobra.Command) (*ragduel.Engine, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := ragduel.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ragduel.New(ctx, cfg)
}
