package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryan-rushton/drawer/internal/apps"
)

var (
	listQuery string
	listJSON  bool
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the launchable apps",
		Long:    "Load the apps once, filter them by --query and print name and ID per line",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.close()

			snap := apps.Load(cmd.Context(), env.source, env.logger)
			shown := apps.Filter(snap.Records, listQuery)

			out := cmd.OutOrStdout()
			if listJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if shown == nil {
					shown = []apps.Record{}
				}
				return enc.Encode(shown)
			}
			for _, r := range shown {
				fmt.Fprintf(out, "%s\t%s\n", r.Name, r.PackageID)
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only show apps whose name or ID contains this")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of tab-separated lines")
	rootCmd.AddCommand(listCmd)
}
