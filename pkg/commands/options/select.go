// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// SelectOptions picks which forts a command works on.
type SelectOptions struct {
	Kind   string
	Region string
	Pinned bool
}

// AddKindArg registers --kind.
func AddKindArg(cmd *cobra.Command, o *SelectOptions) {
	cmd.Flags().StringVarP(&o.Kind, "kind", "k", "",
		`Fort list to use, "A" (cw2) or "B" (em6). Empty selects both.`)
}

// AddSelectArgs registers --kind, --region and --pinned.
func AddSelectArgs(cmd *cobra.Command, o *SelectOptions) {
	AddKindArg(cmd, o)
	cmd.Flags().StringVarP(&o.Region, "region", "r", "",
		"Only forts in this region.")
	cmd.Flags().BoolVarP(&o.Pinned, "pinned", "p", false,
		"Put the pinned forts first.")
}

// StatusOptions toggles reading the status snapshot.
type StatusOptions struct {
	Status bool
}

func AddStatusArg(cmd *cobra.Command, o *StatusOptions) {
	cmd.Flags().BoolVar(&o.Status, "status", false,
		"Read the status snapshot and show each fort's status.")
}
