package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/tfgrant/internal/app"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Analyze and push the derived policy to IAM",
	Long: `Apply runs the analysis, substitutes the caller's account and region
into the policy, and creates (or versions) the managed policy named by
--policy-name.

Example:
  tfgrant apply --path ./infra --policy-name deployer-perms --attach-role deployer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Path = args[0]
		}
		art, err := app.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		policyArn, err := app.Apply(cmd.Context(), cfg, art.Policy)
		if err != nil {
			return err
		}
		fmt.Printf("Applied policy: %s\n", policyArn)
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&cfg.AWS.PolicyName, "policy-name", cfg.AWS.PolicyName, "Managed policy name to create or update")
	applyCmd.Flags().StringVar(&cfg.AWS.AttachRole, "attach-role", "", "Role to attach the policy to")
}
