package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DrSkyle/tfgrant/internal/app"
	"github.com/DrSkyle/tfgrant/pkg/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a Terraform directory and write policy artifacts",
	Long: `Analyze parses every .tf file under --path, derives the IAM permissions
Terraform needs to manage the declared resources, and writes policy.json
and report.md to --out.

Example:
  tfgrant analyze --path ./infra --out ./artifacts`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("path") && len(args) > 0 {
		cfg.Path = args[0]
	}
	if cfg.Path == "." && isInteractive() && !cmd.Flags().Changed("path") {
		if picked, err := promptForDirectory(); err == nil && picked != "" {
			cfg.Path = picked
		}
	}

	art, err := app.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printSummary(art)
	return nil
}

func printSummary(art *app.Artifacts) {
	stats := report.Compute(art.Result)

	good := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFCC00"))
	bad := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3366"))

	fmt.Printf("Analyzed %d resource declarations into %d statements\n",
		stats.Declarations, stats.Statements)

	scoreStyle := good
	switch {
	case stats.Score < 40:
		scoreStyle = bad
	case stats.Score < 75:
		scoreStyle = warn
	}
	fmt.Printf("Scoping score: %s (specific %d, wildcard %d)\n",
		scoreStyle.Render(fmt.Sprintf("%d/100", stats.Score)),
		stats.SpecificARNs, stats.WildcardARNs)

	if stats.ParseFailures > 0 {
		fmt.Println(warn.Render(fmt.Sprintf("Skipped %d unparseable file(s), see report.md", stats.ParseFailures)))
	}
	for _, f := range art.Findings {
		style := warn
		if f.Severity == "error" {
			style = bad
		}
		fmt.Println(style.Render(fmt.Sprintf("[%s] %s: %s", f.Severity, f.Sid, f.Message)))
	}
	fmt.Printf("Artifacts written to %s\n", cfg.OutputDir)
}
