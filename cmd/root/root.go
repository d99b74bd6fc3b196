// Package root contains the root command for the application
package root

import (
	"fjacquet/qfx-rebank/internal/config"

	"github.com/spf13/cobra"
)

// Cmd is the root command
var Cmd = New()

// New builds a root command with the persistent configuration flags.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qfx-rebank",
		Short: "A CLI tool to retarget QFX statements to another financial institution.",
		Long: `qfx-rebank rewrites the routing identifiers of a QFX (Quicken Web Connect) statement
so it imports under a different institution, optionally inverts transaction amount
signs, files the result under a year directory and verifies the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default searches $HOME/.qfx-rebank, .qfx-rebank and .)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	return cmd
}

// LoadConfig builds the configuration for a running command from defaults,
// config file, environment and the command's flags.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		cfgFile = ""
	}
	return config.Load(cfgFile, cmd.Flags())
}

// ApplyAmountFlags lets --invert-amounts or --keep-amounts override the
// configured polarity.
func ApplyAmountFlags(cmd *cobra.Command, cfg *config.Config) {
	if invert, _ := cmd.Flags().GetBool("invert-amounts"); invert {
		cfg.Amounts.Invert = true
	}
	if keep, _ := cmd.Flags().GetBool("keep-amounts"); keep {
		cfg.Amounts.Invert = false
	}
}

// AddAmountFlags registers the mutually exclusive polarity flags.
func AddAmountFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("invert-amounts", false, "Invert transaction amount signs (default from amounts.invert, true)")
	cmd.Flags().Bool("keep-amounts", false, "Keep transaction amount signs unchanged")
	cmd.MarkFlagsMutuallyExclusive("invert-amounts", "keep-amounts")
}

// AddReportFlag registers --report-format.
func AddReportFlag(cmd *cobra.Command) {
	cmd.Flags().String("report-format", "text", "Verification report format (text, json, yaml, csv)")
}
