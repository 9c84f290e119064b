package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryan-rushton/drawer/internal/source"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sources",
		Short: "List the available app sources",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range source.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", p.Name, p.Description)
			}
		},
	})
}
