package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DrSkyle/tfgrant/pkg/policy"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective lint rules as YAML",
	Long: `Rules prints the lint rule set the analysis would use, either the
built-in defaults or the contents of --rules, in a form that can be
saved and edited:

  tfgrant rules > .tfgrant-rules.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := policy.DefaultRules()
		if cfg.RulesFile != "" {
			loaded, err := policy.LoadRules(cfg.RulesFile)
			if err != nil {
				return err
			}
			rules = loaded
		}

		out := struct {
			Rules []policy.LintRule `yaml:"rules"`
		}{Rules: rules}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding rules: %w", err)
		}
		return enc.Close()
	},
}
