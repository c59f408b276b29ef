package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"konverge/internal/reconcile"
)

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// displayResult renders one apply batch to stdout.
func displayResult(result *reconcile.Result, dryRun bool) {
	if dryRun {
		fmt.Println(boldStyle.Render("🧪 Dry Run: applied against an in-memory cluster\n"))
	} else {
		fmt.Println(boldStyle.Render("🚀 Apply Results\n"))
	}

	displayOutcomes("Created:", result.ByAction(reconcile.ActionCreated))
	displayOutcomes("Updated:", result.ByAction(reconcile.ActionUpdated))
	displayOutcomes("Recreated:", result.ByAction(reconcile.ActionRecreated))

	if skipped := result.ByAction(reconcile.ActionSkipped); len(skipped) > 0 {
		fmt.Println(boldStyle.Render("Skipped:"))
		for _, o := range skipped {
			fmt.Printf("  %s %s - %s\n", warnStyle.Render("→"), o.Ref, o.Reason)
		}
		fmt.Println()
	}

	if failed := result.Failed(); len(failed) > 0 {
		fmt.Println(failStyle.Bold(true).Render("Errors:"))
		for _, o := range failed {
			fmt.Printf("  %s %s: %s\n", failStyle.Render("✗"), o.Ref, o.Reason)
		}
		fmt.Println()
	}

	summary := fmt.Sprintf("%s in %v", result.Summary(), result.Duration.Round(time.Millisecond))
	if len(result.Failed()) > 0 {
		fmt.Println(warnStyle.Bold(true).Render("⚠ " + summary))
	} else {
		fmt.Println(doneStyle.Bold(true).Render("🎉 " + summary))
	}
}

func displayOutcomes(heading string, outcomes []reconcile.Outcome) {
	if len(outcomes) == 0 {
		return
	}
	fmt.Println(boldStyle.Render(heading))
	for _, o := range outcomes {
		fmt.Printf("  %s %s %s\n", doneStyle.Render("✓"), o.Ref.Kind, o.Ref.Name)
	}
	fmt.Println()
}
