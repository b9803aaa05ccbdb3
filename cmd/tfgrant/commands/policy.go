package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/tfgrant/internal/app"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the derived policy JSON to stdout",
	Long: `Policy runs the analysis and prints the rendered IAM policy document,
nothing else, so the output can be piped:

  tfgrant policy --path ./infra | jq .Statement`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Path = args[0]
		}
		// No artifact directory, stdout is the artifact.
		cfg.OutputDir = ""
		cfg.JsonLogs = true

		art, err := app.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Println(string(art.Policy))
		return nil
	},
}
