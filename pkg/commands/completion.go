package commands

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TetuPalomydes/dam-map/pkg/dataset"
	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(fortmap completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(fortmap completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func registerKindCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, k := range record.AllKinds() {
			out = append(out, string(k))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

func registerRegionCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("region", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return regionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func regionCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	opts := dataset.OptionsFromConfig(cfg)
	opts.Log = logger.Setup(io.Discard, "", "")
	d, err := dataset.Load(opts)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range d.RegionNames() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, strconv.Quote(name))
		}
	}
	return out
}
