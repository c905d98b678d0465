package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/abhisek/psyquest/internal/catalog"
	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	purple = color.New(color.FgMagenta, color.Bold).SprintFunc()
)

// printResolution writes a resolved result in the line-based layout shared by
// take and resolve.
func printResolution(w io.Writer, cat *catalog.Catalog, res *scoring.Resolution, shareURL string) {
	d := res.Detail
	fmt.Fprintf(w, "%s %s\n", gray("Your result:"), purple(d.Title))
	if res.Test.Scoring.Type == quiz.ScoreRange {
		fmt.Fprintf(w, "%s %d\n", gray("Score:"), res.Total)
	}
	if res.Fallback {
		fmt.Fprintln(w, yellow("(the answers did not match any result; showing the default)"))
	}
	if d.Desc != "" {
		fmt.Fprintf(w, "\n%s\n", d.Desc)
	}
	if d.Strengths != "" {
		fmt.Fprintf(w, "\n%s %s\n", bold("Strengths:"), d.Strengths)
	}
	if d.Weaknesses != "" {
		fmt.Fprintf(w, "%s %s\n", bold("Watch out for:"), d.Weaknesses)
	}
	if lines := d.AdviceLines(); len(lines) > 0 {
		fmt.Fprintf(w, "\n%s\n", bold("Advice"))
		for i, l := range lines {
			fmt.Fprintf(w, "  %d. %s\n", i+1, l)
		}
	}
	if d.Quests != "" {
		fmt.Fprintf(w, "\n%s %s\n", bold("Try this:"), d.Quests)
	}

	fmt.Fprintf(w, "\n%s\n", res.ShareText())
	if shareURL != "" {
		fmt.Fprintf(w, "%s %s\n", gray("Link:"), cyan(shareURL))
	}

	if others := cat.Others(res.Test.ID); len(others) > 0 {
		fmt.Fprintf(w, "\n%s\n", gray("More tests:"))
		for _, t := range others {
			fmt.Fprintf(w, "  %s  %s\n", gray(fmt.Sprintf("%-3s", t.ID)), t.Title)
		}
	}
}
