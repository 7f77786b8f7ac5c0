package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print information about the build environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			rc, err := a.prepare()
			if err != nil {
				return err
			}
			defer rc.log.Sync()

			info := a.detect(cmd.Context(), rc)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "os_family: %s\n", info.OS)
			fmt.Fprintf(w, "compiler_path: %s\n", info.CompilerPath)
			fmt.Fprintf(w, "compiler_id: %s\n", info.Compiler)
			fmt.Fprintf(w, "compiler_version: %s\n", info.Version)
			fmt.Fprintf(w, "linker: %s\n", info.Linker)
			return nil
		},
	}
}
