package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/TetuPalomydes/dam-map/pkg/runner/status"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage the fort status snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addStatusBuild(cmd)
	topLevel.AddCommand(cmd)
}

func addStatusBuild(parent *cobra.Command) {
	output := ""

	cmd := &cobra.Command{
		Use:   "build <strategy.csv>",
		Short: "Convert an exported strategy CSV into the status JSON",
		Example: `
fortmap status build strategy.csv
fortmap status build strategy.csv -o fort_status.json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one csv file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				cfg, err := store.LoadConfig()
				if err != nil {
					return err
				}
				output = cfg.Status.File
			}
			b := status.Build{Input: args[0], Output: output}
			return b.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"JSON file to write. Defaults to status.file.")

	parent.AddCommand(cmd)
}
