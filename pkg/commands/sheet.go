package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/TetuPalomydes/dam-map/pkg/commands/options"
	"github.com/TetuPalomydes/dam-map/pkg/runner/sheet"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func addSheet(topLevel *cobra.Command) {
	so := &options.SelectOptions{}
	st := &options.StatusOptions{}
	format := "csv"
	output := ""

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Export the ordered forts as a planning sheet",
		Example: `
fortmap sheet --pinned -o forts.csv
fortmap sheet --kind B --format tsv -o em6.txt
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := sheet.Sheet{
				Config: cfg,
				Kind:   so.Kind,
				Region: so.Region,
				Pinned: so.Pinned,
				Format: format,
				Output: output,
				Status: st.Status,
			}
			return s.Do(context.Background())
		},
	}

	options.AddSelectArgs(cmd, so)
	options.AddStatusArg(cmd, st)
	cmd.Flags().StringVarP(&format, "format", "f", "csv",
		`Sheet format, "csv" (with BOM) or "tsv" (loadable fort list).`)
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Write to this file instead of stdout.")
	registerKindCompletion(cmd)
	registerRegionCompletion(cmd)

	topLevel.AddCommand(cmd)
}
