package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "launch <id>",
		Short: "Launch an app by ID",
		Long:  "Start the app with the given ID (see 'drawer list') without opening the drawer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.source.Launch(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("launching %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Launched %s\n", args[0])
			return nil
		},
	})
}
