// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit/internal/model"
	"github.com/jonathan/resume-fit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPrediction outputs a human-readable summary of a fit prediction.
func (p *Printer) PrintPrediction(pred *types.FitPrediction) {
	if pred == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Label:      %s\n", pred.Label))
	sb.WriteString(fmt.Sprintf("Confidence: %.4f\n", pred.Confidence))
	sb.WriteString(fmt.Sprintf("Model:      %s\n", pred.ModelKind))
	if pred.Fallback {
		sb.WriteString("⚠ heuristic fallback answered this request\n")
	}
	sb.WriteString("\nProbabilities:\n")

	classes := make([]string, 0, len(pred.Probabilities))
	for c := range pred.Probabilities {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		sb.WriteString(fmt.Sprintf("  %-14s %.4f\n", c, pred.Probabilities[c]))
	}

	p.printBox("FIT PREDICTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGap outputs the matched and missing skills of a resume/job pair.
func (p *Printer) PrintSkillGap(gap *types.SkillGap) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %.1f%%\n", gap.MatchScore))
	sb.WriteString("\n")

	writeSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(title + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	writeSection("Matched", gap.Matched)
	writeSection("Missing from resume", gap.Missing)
	writeSection("Extra on resume", gap.Extra)

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrainingSummary outputs the cross-validation outcome per candidate
// fold and the selected model.
func (p *Printer) PrintTrainingSummary(sel *model.Selection) {
	if sel == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selected:      %s\n", sel.ModelName))
	sb.WriteString(fmt.Sprintf("Mean ROC-AUC:  %.4f\n", sel.MeanAUC))
	sb.WriteString(fmt.Sprintf("AUC variance:  %.6f\n", sel.AUCVariance))
	sb.WriteString(fmt.Sprintf("Mean accuracy: %.4f\n", sel.MeanAccuracy))

	if len(sel.FoldScores) > 0 {
		sb.WriteString("\nFolds:\n")
		count := min(len(sel.FoldScores), maxItemsToShow)
		for i := 0; i < count; i++ {
			fs := sel.FoldScores[i]
			sb.WriteString(fmt.Sprintf("  #%d  auc %.4f  acc %.4f\n", i+1, fs.ROCAUC, fs.Accuracy))
		}
		if len(sel.FoldScores) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more folds\n", len(sel.FoldScores)-maxItemsToShow))
		}
	}

	p.printBox("MODEL SELECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs the skills found in one document.
func (p *Printer) PrintExtraction(found []types.ExtractedSkill, degraded bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n", len(found)))
	if degraded {
		sb.WriteString("⚠ recognizer unavailable, dictionary-only pass\n")
	}
	sb.WriteString("\n")

	count := min(len(found), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := found[i]
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", s.Skill, s.Category))
		sb.WriteString(fmt.Sprintf("  via %s, confidence %.2f\n", s.Method, s.Confidence))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(found) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more skills", len(found)-maxItemsToShow))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
