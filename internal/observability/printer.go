// Package observability provides formatted output utilities for the analyze
// command.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/present"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for the comparison view
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable comparison view of an analyzed
// batch: one box per candidate, the best candidate, and any skipped or
// failed files.
func (p *Printer) PrintAnalysis(view *present.AnalysisView) {
	if view == nil {
		return
	}

	if len(view.Candidates) == 0 {
		p.printBox("Candidates Analysis", view.Message)
	}

	for _, candidate := range view.Candidates {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Snippet:    %s\n", candidate.Snippet))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Total:      %s%%\n", candidate.TotalScore))
		sb.WriteString(fmt.Sprintf("Skills:     %s%%\n", candidate.SkillsScore))
		sb.WriteString(fmt.Sprintf("Experience: %s%%", candidate.ExperienceScore))
		p.printBox(candidate.Label, sb.String())
	}

	if view.Best != nil {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s: %s\n", view.Best.Label, view.Best.Snippet))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Total:      %s%%\n", view.Best.TotalScore))
		sb.WriteString(fmt.Sprintf("Skills:     %s%%\n", view.Best.SkillsScore))
		sb.WriteString(fmt.Sprintf("Experience: %s%%", view.Best.ExperienceScore))
		p.printBox("Best Candidate", sb.String())
	}

	p.printSkipped(view)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printSkipped(view *present.AnalysisView) {
	if len(view.Skipped) > 0 {
		fmt.Fprintln(p.out, "Skipped files:")
		for _, skipped := range view.Skipped {
			fmt.Fprintf(p.out, "  • %s: %s\n", skipped.FileName, skipped.Reason)
		}
	}
	if len(view.Failed) > 0 {
		fmt.Fprintln(p.out, "Failed files:")
		for _, failed := range view.Failed {
			fmt.Fprintf(p.out, "  • %s (%s): %s\n", failed.FileName, failed.Stage, failed.Reason)
		}
	}
}
