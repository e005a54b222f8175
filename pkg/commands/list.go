package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/TetuPalomydes/dam-map/pkg/commands/options"
	"github.com/TetuPalomydes/dam-map/pkg/runner/list"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func addList(topLevel *cobra.Command) {
	so := &options.SelectOptions{}
	st := &options.StatusOptions{}
	links := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the ordered fort lists",
		Example: `
fortmap list
fortmap list --kind B --pinned
fortmap list --region 中原 --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Config:    cfg,
				Kind:      so.Kind,
				Region:    so.Region,
				Pinned:    so.Pinned,
				ShowLinks: links,
				Status:    st.Status,
				JSON:      oo.JSON,
			}
			err = l.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSelectArgs(cmd, so)
	options.AddStatusArg(cmd, st)
	cmd.Flags().BoolVar(&links, "links", false,
		"Show the map and action URLs.")
	registerKindCompletion(cmd)
	registerRegionCompletion(cmd)

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
