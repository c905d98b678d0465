package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tests in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, source, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", gray(fmt.Sprintf("%d tests from %s", len(cat.Tests()), source)))
		for _, t := range cat.Tests() {
			detail := fmt.Sprintf("%d questions", t.QuestionCount())
			if t.GenderBased {
				detail += ", by gender"
			}
			fmt.Fprintf(out, "  %s  %s  %s\n", cyan(fmt.Sprintf("%-3s", t.ID)), bold(t.Title), gray(detail))
			if t.Description != "" {
				fmt.Fprintf(out, "       %s\n", t.Description)
			}
		}
		return nil
	},
}
