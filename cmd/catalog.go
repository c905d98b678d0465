package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/psyquest/internal/catalog"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
	"github.com/abhisek/psyquest/internal/store"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check and import test catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a YAML catalog (default: the configured catalog)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var (
			cat    *catalog.Catalog
			source string
			err    error
		)
		if len(args) == 1 {
			cat, err = catalog.LoadFile(args[0])
			source = args[0]
		} else {
			cat, source, err = loadCatalog(cmd.Context())
		}

		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "%s %s\n", red("✗"), bold(source))
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			return fmt.Errorf("%d problems found", len(verr.Problems))
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", green("✓"), bold(source))
		printSummary(out, cat)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a YAML catalog into the SQLite store (default: the embedded catalog)",
	Long: `Validate a YAML catalog and replace the tests held in the SQLite store with
it. Later runs with --db (or PSYQUEST_DB) read tests from the store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			cat    *catalog.Catalog
			source = "embedded"
			err    error
		)
		if len(args) == 1 {
			source = args[0]
			cat, err = catalog.LoadFile(source)
		} else {
			cat, err = catalog.Default()
		}
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		imp, err := st.ImportTests(cmd.Context(), source, cat.Tests())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d tests from %s into %s\n",
			green("✓"), imp.TestCount, source, dbPath)
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the SQLite store holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		imp, err := st.LatestImport(cmd.Context())
		if err != nil {
			return err
		}
		if imp == nil {
			fmt.Fprintf(out, "%s is empty; run 'psyquest catalog import' first\n", dbPath)
			return nil
		}
		fmt.Fprintf(out, "%s\n  last import: %s from %s (%d tests)\n",
			bold(dbPath), imp.ImportedAt.Local().Format(time.DateTime), imp.Source, imp.TestCount)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
}

// printSummary lists each test with its scoring and, for score-range tests,
// the totals a response can reach.
func printSummary(out io.Writer, cat *catalog.Catalog) {
	for _, t := range cat.Tests() {
		line := fmt.Sprintf("  %s  %-34s %s, %d questions", cyan(fmt.Sprintf("%-3s", t.ID)), t.Title, t.Scoring.Type, t.QuestionCount())
		if t.Scoring.Type == quiz.ScoreRange {
			qs, err := cat.Questions(t.ID, quiz.GenderNone)
			if err == nil {
				lo, hi := scoring.TotalBounds(t.Scoring, qs)
				line += gray(fmt.Sprintf(", totals %d-%d", lo, hi))
			}
		}
		fmt.Fprintln(out, line)
	}
}
