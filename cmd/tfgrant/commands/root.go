package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DrSkyle/tfgrant/pkg/config"
	"github.com/DrSkyle/tfgrant/pkg/version"
)

var (
	cfgFile string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "tfgrant",
	Short: "Derive least-privilege IAM policies from Terraform sources",
	Long: `tfgrant - Terraform IAM Derivation

Parse. Map. Grant.`,
	Version: version.Current,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.tfgrant.yaml)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Path, "path", "p", ".", "Terraform directory to analyze")
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputDir, "out", "o", "tfgrant-out", "Artifact directory or s3://bucket/prefix")
	rootCmd.PersistentFlags().BoolVar(&cfg.Strict, "strict", false, "Fail on unparseable files instead of skipping them")
	rootCmd.PersistentFlags().StringVar(&cfg.RulesFile, "rules", "", "YAML lint rules file")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&cfg.JsonLogs, "json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&cfg.AWS.Region, "region", "", "AWS region for identity resolution")
	rootCmd.PersistentFlags().StringVar(&cfg.AWS.Profile, "profile", "", "AWS shared config profile")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(yoloCmd)
}

var yoloCmd = &cobra.Command{
	Use:    "yolo",
	Short:  "Administrator access speedrun",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(`{
  "Version": "2012-10-17",
  "Statement": [{"Effect": "Allow", "Action": "*", "Resource": "*"}]
}`)
		fmt.Println("(This is a joke. Do not apply this. That is the entire point of tfgrant.)")
	},
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".tfgrant.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("TFGRANT")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		_ = viper.Unmarshal(&cfg)
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00B2FF")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("TFGRANT %s", version.Current)))
	fmt.Println("Least-privilege IAM policies, derived from your Terraform.")

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	fmt.Println(titleStyle.Render("COMMANDS"))
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
		}
	}
	fmt.Println("")

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-12s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}
