package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/pokestats/internal/ui"
)

func configCmd(r *runner) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  exactArgs(0, "config [--write file]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := r.app.Config
			if write != "" {
				if err := cfg.Save(write); err != nil {
					return err
				}
				ui.OK("wrote " + write)
				return nil
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&write, "write", "w", "", "save to this file instead of printing")
	return cmd
}
