// Package report renders a human-readable summary of an analysis run:
// coverage statistics, scoping quality, and the statements themselves.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DrSkyle/tfgrant/pkg/arnbuild"
	"github.com/DrSkyle/tfgrant/pkg/engine"
	"github.com/DrSkyle/tfgrant/pkg/policy"
)

// Stats summarizes scoping quality of one analysis run.
type Stats struct {
	Declarations  int
	Statements    int
	Actions       int
	SpecificARNs  int
	WildcardARNs  int
	SkippedTypes  int
	ParseFailures int

	// Score is 0-100: the share of resource scopes that are specific,
	// docked for skipped resources and unparseable files.
	Score int
}

// Compute derives statistics from an engine result.
func Compute(res *engine.Result) Stats {
	s := Stats{
		Declarations:  len(res.Declarations),
		Statements:    len(res.Statements),
		SkippedTypes:  len(res.Skipped),
		ParseFailures: len(res.FileErrors),
	}
	actions := make(map[string]bool)
	for _, st := range res.Statements {
		for _, a := range st.Action {
			actions[a] = true
		}
		for _, r := range st.Resource {
			if arnbuild.IsWildcard(r) {
				s.WildcardARNs++
			} else {
				s.SpecificARNs++
			}
		}
	}
	s.Actions = len(actions)

	total := s.SpecificARNs + s.WildcardARNs
	if total > 0 {
		s.Score = 100 * s.SpecificARNs / total
	}
	s.Score -= 5 * s.SkippedTypes
	s.Score -= 10 * s.ParseFailures
	if s.Score < 0 {
		s.Score = 0
	}
	return s
}

// Markdown renders the full report.
func Markdown(res *engine.Result, findings []policy.Finding) string {
	stats := Compute(res)

	var b strings.Builder
	b.WriteString("# tfgrant analysis report\n\n")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Resource declarations | %d |\n", stats.Declarations)
	fmt.Fprintf(&b, "| Policy statements | %d |\n", stats.Statements)
	fmt.Fprintf(&b, "| Distinct actions | %d |\n", stats.Actions)
	fmt.Fprintf(&b, "| Specifically scoped ARNs | %d |\n", stats.SpecificARNs)
	fmt.Fprintf(&b, "| Wildcard ARNs | %d |\n", stats.WildcardARNs)
	fmt.Fprintf(&b, "| Scoping score | %d/100 |\n", stats.Score)
	b.WriteString("\n")

	if len(res.FileErrors) > 0 {
		b.WriteString("## Skipped files\n\n")
		for _, pe := range res.FileErrors {
			fmt.Fprintf(&b, "- `%s:%d` %s\n", pe.File, pe.Line, pe.Detail)
		}
		b.WriteString("\n")
	}

	if len(res.Skipped) > 0 {
		b.WriteString("## Resources without derivable actions\n\n")
		skipped := append([]string(nil), res.Skipped...)
		sort.Strings(skipped)
		for _, addr := range skipped {
			fmt.Fprintf(&b, "- `%s`\n", addr)
		}
		b.WriteString("\n")
	}

	if len(findings) > 0 {
		b.WriteString("## Lint findings\n\n")
		fmt.Fprintf(&b, "| Severity | Rule | Statement | Message |\n|---|---|---|---|\n")
		for _, f := range findings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Severity, f.RuleID, f.Sid, f.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Statements\n\n")
	for _, st := range res.Statements {
		fmt.Fprintf(&b, "### %s\n\n", st.Sid)
		if len(st.Sources) > 0 {
			fmt.Fprintf(&b, "Derived from: `%s`\n\n", strings.Join(st.Sources, "`, `"))
		}
		b.WriteString("Actions:\n\n")
		for _, a := range st.Action {
			fmt.Fprintf(&b, "- `%s`\n", a)
		}
		b.WriteString("\nResources:\n\n")
		for _, r := range st.Resource {
			fmt.Fprintf(&b, "- `%s`\n", r)
		}
		b.WriteString("\n")
	}

	return b.String()
}
