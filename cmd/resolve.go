package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/psyquest/internal/link"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [result-link]",
	Short: "Show the result a link or encoded response stands for",
	Long: `Resolve a shared result link, e.g.

  psyquest resolve 'https://psyquest.example/test/1/result?data=ABCBB'

or give the parts directly with --test, --data and --gender.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("test", "", "Test id")
	resolveCmd.Flags().String("data", "", "Encoded response")
	resolveCmd.Flags().String("gender", "", "male or female, for gender-based tests")
	resolveCmd.Flags().Bool("json", false, "Print the result as JSON")
}

// resolution is the JSON form printed with --json.
type resolution struct {
	TestID   string            `json:"testId"`
	Gender   quiz.Gender       `json:"gender,omitempty"`
	Key      string            `json:"key"`
	Result   quiz.ResultDetail `json:"result"`
	Total    *int              `json:"total,omitempty"`
	Fallback bool              `json:"fallback"`
	ShareURL string            `json:"shareUrl"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	var l link.Link
	if len(args) == 1 {
		parsed, err := link.Parse(args[0])
		if err != nil {
			return err
		}
		l = parsed
	} else {
		l.TestID, _ = cmd.Flags().GetString("test")
		l.Data, _ = cmd.Flags().GetString("data")
		genderVal, _ := cmd.Flags().GetString("gender")
		g, err := quiz.ParseGender(genderVal)
		if err != nil {
			return err
		}
		l.Gender = g
	}
	if l.TestID == "" {
		return fmt.Errorf("give a result link or --test")
	}

	cat, _, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	res, err := scoring.Resolve(cat, l.TestID, l.Data, l.Gender)
	if err != nil {
		return err
	}
	shareURL := link.Build(cfg.Server.BaseURL, l)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		r := resolution{
			TestID:   res.Test.ID,
			Gender:   res.Gender,
			Key:      res.Key,
			Result:   res.Detail,
			Fallback: res.Fallback,
			ShareURL: shareURL,
		}
		if res.Test.Scoring.Type == quiz.ScoreRange {
			total := res.Total
			r.Total = &total
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(out, "%s\n\n", bold(res.Test.Title))
	printResolution(out, cat, res, shareURL)
	return nil
}
