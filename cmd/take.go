package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
	"github.com/abhisek/psyquest/internal/session"
)

var takeCmd = &cobra.Command{
	Use:   "take <test-id>",
	Short: "Take a test line by line (no TUI)",
	Long: `Answer a test one question at a time on the command line.

With --answers the whole response is given up front, e.g. --answers ABCBB,
which is handy for scripts. Type q at a prompt to leave the test.`,
	Args: cobra.ExactArgs(1),
	RunE: runTake,
}

func init() {
	takeCmd.Flags().String("gender", "", "Question set for gender-based tests: male or female")
	takeCmd.Flags().String("answers", "", "Answer letters in order, e.g. ABCBB")
}

// errQuit ends an interactive take without an error exit code.
var errQuit = errors.New("test abandoned")

func runTake(cmd *cobra.Command, args []string) error {
	genderVal, _ := cmd.Flags().GetString("gender")
	answersVal, _ := cmd.Flags().GetString("answers")

	cat, _, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	testID := args[0]
	t, err := cat.Test(testID)
	if err != nil {
		return err
	}

	gender, err := quiz.ParseGender(genderVal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	var completion *session.Completion
	if answersVal != "" {
		completion, err = session.Run(cat, testID, gender, parseLetters(answersVal), session.WithLogger(logger))
	} else {
		if t.GenderBased && gender == quiz.GenderNone {
			gender, err = askGender(out, in)
			if err != nil {
				return quitOK(out, err)
			}
		}
		var flow *session.Flow
		flow, err = session.Start(cat, testID, gender, session.WithLogger(logger))
		if err == nil {
			completion, err = askAll(out, in, flow)
			if err != nil {
				return quitOK(out, err)
			}
		}
	}
	if err != nil {
		return err
	}

	res, err := scoring.Resolve(cat, completion.TestID, completion.Encoded, completion.Gender)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	printResolution(out, cat, res, completion.URL(cfg.Server.BaseURL))
	return nil
}

func quitOK(out io.Writer, err error) error {
	if errors.Is(err, errQuit) {
		fmt.Fprintln(out, gray("\n(test abandoned, answers discarded)"))
		return nil
	}
	return err
}

func parseLetters(s string) []quiz.Letter {
	var letters []quiz.Letter
	for _, r := range strings.ToUpper(s) {
		if r == ' ' || r == ',' {
			continue
		}
		letters = append(letters, quiz.Letter(string(r)))
	}
	return letters
}

func askGender(out io.Writer, in *bufio.Scanner) (quiz.Gender, error) {
	for {
		fmt.Fprint(out, "This test has separate questions per gender. male or female? ")
		if !in.Scan() {
			return quiz.GenderNone, errQuit
		}
		text := strings.TrimSpace(in.Text())
		if strings.EqualFold(text, "q") {
			return quiz.GenderNone, errQuit
		}
		g, err := quiz.ParseGender(text)
		if err == nil && g != quiz.GenderNone {
			return g, nil
		}
		fmt.Fprintln(out, red("Please type male or female."))
	}
}

// askAll presents each question until the flow completes. A closed input or
// q cancels the flow.
func askAll(out io.Writer, in *bufio.Scanner, flow *session.Flow) (*session.Completion, error) {
	fmt.Fprintf(out, "%s\n", bold(flow.Test().Title))
	if d := flow.Test().Description; d != "" {
		fmt.Fprintln(out, gray(d))
	}

	for {
		q, err := flow.CurrentQuestion()
		if err != nil {
			return nil, err
		}
		current, total := flow.Progress()
		fmt.Fprintf(out, "\n── Question %d/%d ──\n%s\n", current, total, q.Text)
		for _, l := range q.Choices() {
			fmt.Fprintf(out, "  %s) %s\n", l, q.OptionText(l))
		}

		for {
			fmt.Fprint(out, "\nYour answer: ")
			if !in.Scan() {
				flow.Cancel()
				return nil, errQuit
			}
			text := strings.ToUpper(strings.TrimSpace(in.Text()))
			if text == "Q" {
				flow.Cancel()
				return nil, errQuit
			}

			c, err := flow.Submit(quiz.Letter(text))
			if errors.Is(err, session.ErrInvalidChoice) {
				fmt.Fprintln(out, red(fmt.Sprintf("Choose one of %s.", joinLetters(q.Choices()))))
				continue
			}
			if err != nil {
				return nil, err
			}
			if c != nil {
				fmt.Fprintln(out, green("✓ Done!"))
				return c, nil
			}
			break
		}
	}
}

func joinLetters(ls []quiz.Letter) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
