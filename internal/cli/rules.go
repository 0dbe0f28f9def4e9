package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRulesCmd(appFn func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered automation rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			rules := a.Rules.Rules()
			if len(rules) == 0 {
				fmt.Fprintln(out, styleMuted.Render("no rules registered"))
				return nil
			}
			for _, r := range rules {
				fmt.Fprintf(out, "%s  %s\n", styleBold.Render(r.Name), styleMuted.Render(r.ID))
				if r.Description != "" {
					fmt.Fprintf(out, "  %s\n", r.Description)
				}
			}
			return nil
		},
	}
}
