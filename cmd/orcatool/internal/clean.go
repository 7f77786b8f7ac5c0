package internal

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orcac/orcatool/internal/env"
)

func (a *app) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build output",
		Long:  `Clean recursively removes the build output root. It is not an error if it does not exist.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rc, err := a.prepare()
			if err != nil {
				return err
			}
			defer rc.log.Sync()

			removed, err := env.Clean(rc.root)
			if err != nil {
				return err
			}
			rc.log.Debug("clean", zap.String("root", rc.root), zap.Bool("removed", removed))
			return nil
		},
	}
}
