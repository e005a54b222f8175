package commands

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TetuPalomydes/dam-map/pkg/commands/options"
	"github.com/TetuPalomydes/dam-map/pkg/runner/ui"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SelectOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive fort map",
		Example: `
fortmap ui
fortmap ui --kind A
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs a terminal, try `fortmap list`")
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			i := ui.UI{Config: cfg, Kind: so.Kind, Pinned: so.Pinned}
			return i.Do(context.Background())
		},
	}

	options.AddKindArg(cmd, so)
	cmd.Flags().BoolVarP(&so.Pinned, "pinned", "p", false,
		"Draw and pick the pinned forts first.")
	registerKindCompletion(cmd)

	topLevel.AddCommand(cmd)
}
