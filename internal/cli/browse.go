package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/pokestats/internal/tui"
)

func browseCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Open the interactive stats browser",
		Args:        exactArgs(0, "browse"),
		Annotations: map[string]string{tuiAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), r.app)
		},
	}
}
