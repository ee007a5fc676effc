package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brunobiangulo/ragduel/dataset"
)

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and validate dataset files",
	}
	cmd.AddCommand(datasetValidateCmd())
	cmd.AddCommand(datasetListCmd())
	return cmd
}

func datasetValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a dataset file for duplicate entities and dangling relationships",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDatasetArg(args)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return err
			}
			fmt.Printf("ok: %d entities, %d relationships\n", len(ds.Entities), len(ds.Relationships))
			return nil
		},
	}
}

func datasetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List entities and relationships in a dataset file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDatasetArg(args)
			if err != nil {
				return err
			}
			for _, e := range ds.Entities {
				fmt.Printf("%s (%s)\n", e.Name, e.Type)
				for _, a := range e.Attrs {
					fmt.Printf("  %s: %s\n", a.Key, a.String())
				}
			}
			for _, r := range ds.Relationships {
				arrow := "-"
				if r.Directed {
					arrow = "->"
				}
				fmt.Printf("%s -[%s]%s %s\n", r.From, r.Type, arrow, r.To)
			}
			return nil
		},
	}
}

// loadDatasetArg loads the named file, or the builtin demo dataset when no
// argument is given.
func loadDatasetArg(args []string) (*dataset.Dataset, error) {
	if len(args) == 0 {
		return dataset.Builtin(), nil
	}
	return dataset.Load(args[0])
}
