// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobsearch-tracker/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate cuts s to n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintScoreResult outputs the fit score, its breakdown and the main reasons.
func (p *Printer) PrintScoreResult(title string, result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit:      %d/100 (%s)\n", result.FitScore, result.FitLabel))
	b := result.Breakdown
	sb.WriteString(fmt.Sprintf("Scope %d · Comp %d · Stage %d · Domain %d · Risk -%d\n",
		b.RoleScopeAuthority, b.CompensationBenefits, b.CompanyStageAbility, b.DomainFit, b.RiskPenalty))
	m := result.MustHaveSummary
	sb.WriteString(fmt.Sprintf("Musts:    %d met, %d partial, %d missing of %d\n", m.Met, m.Partial, m.Missing, m.Total))
	if result.NextFollowUp != nil {
		sb.WriteString(fmt.Sprintf("Follow up: %s\n", result.NextFollowUp.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	writeList(&sb, "Disqualifiers", result.Disqualifiers, maxItemsToShow)
	writeList(&sb, "Warnings", result.RiskWarnings, maxItemsToShow)
	writeList(&sb, "Reasons to pursue", result.ReasonsToPursue, 3)
	writeList(&sb, "Reasons to pass", result.ReasonsToPass, 3)
	writeList(&sb, "Gaps", result.GapSuggestions, 3)

	if title == "" {
		title = "FIT SCORE"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequirements outputs extracted requirements with their match status.
func (p *Printer) PrintRequirements(reqs []types.Requirement) {
	if len(reqs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d requirements:\n\n", len(reqs)))
	for _, r := range reqs {
		marker := "✗"
		switch r.Match {
		case types.MatchMet:
			marker = "✓"
		case types.MatchPartial:
			marker = "~"
		}
		sb.WriteString(fmt.Sprintf("%s [%s/%s] %s\n", marker, r.Priority, r.Type, r.Description))
	}

	p.printBox("REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReviewGroups outputs review items grouped by role with status markers.
func (p *Printer) PrintReviewGroups(groups []types.ReviewGroup) {
	if len(groups) == 0 {
		return
	}

	var sb strings.Builder
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%s @ %s (%s)\n", g.Role, g.Company, g.Timeframe))
		for _, item := range g.Items {
			flags := string(item.Status)
			if !item.Included {
				flags += ", excluded"
			}
			text := item.ClaimText
			if text == "" {
				text = "(empty)"
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", text, flags))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CLAIM REVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBundles outputs each experience bundle with its skill, tool and outcome counts.
func (p *Printer) PrintBundles(bundles []types.ExperienceBundle) {
	if len(bundles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total experiences: %d\n\n", len(bundles)))

	count := min(len(bundles), maxItemsToShow)
	for i := 0; i < count; i++ {
		b := bundles[i]
		sb.WriteString(fmt.Sprintf("%s @ %s\n", b.Role, b.Company))
		sb.WriteString(fmt.Sprintf("    %d skills · %d tools · %d outcomes", len(b.Skills), len(b.Tools), len(b.Outcomes)))
		if b.UsedLegacyFallback {
			sb.WriteString(" (legacy)")
		}
		sb.WriteString("\n")
		if len(b.Tools) > 0 {
			sb.WriteString(fmt.Sprintf("    Tools: %s\n", strings.Join(b.Tools, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(bundles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more experiences", len(bundles)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE BUNDLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDuplicateGroups outputs suggested merges, largest group first.
func (p *Printer) PrintDuplicateGroups(groups []types.DuplicateClaimGroup) {
	if len(groups) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d duplicate groups:\n\n", len(groups)))
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("• %s (%d claims)\n", g.Type, g.Size()))
		sb.WriteString(fmt.Sprintf("  keep %s, merge %s\n", g.TargetID, strings.Join(g.SourceIDs, ", ")))
	}

	p.printBox("DUPLICATE CLAIMS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClaimQueue outputs claims awaiting review, lowest confidence first.
func (p *Printer) PrintClaimQueue(claims []types.Claim) {
	if len(claims) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d claims need review:\n\n", len(claims)))
	count := min(len(claims), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := claims[i]
		text := c.Text
		if c.Type == types.ClaimExperience {
			text = fmt.Sprintf("%s @ %s", c.Role, c.Company)
		}
		sb.WriteString(fmt.Sprintf("%.2f  %-10s %s\n", c.Confidence, c.Type, text))
	}
	if len(claims) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(claims)-maxItemsToShow))
	}

	p.printBox("REVIEW QUEUE", strings.TrimSuffix(sb.String(), "\n"))
}
