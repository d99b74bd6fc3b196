// Package verify handles the standalone verification command
package verify

import (
	"fjacquet/qfx-rebank/cmd/common"
	"fjacquet/qfx-rebank/cmd/root"
	"fjacquet/qfx-rebank/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the verify command
var Cmd = New()

// New builds the verify command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <original> <converted>",
		Short: "Compare an original QFX statement with its converted form",
		Long: `Verify checks that the converted statement carries the target routing identifiers,
has as many transaction amounts as the original, and that every amount was inverted
(or left unchanged with --keep-amounts). Neither file is modified.`,
		Args: cobra.ExactArgs(2),
		RunE: verifyFunc,
	}

	root.AddAmountFlags(cmd)
	root.AddReportFlag(cmd)

	return cmd
}

func verifyFunc(cmd *cobra.Command, args []string) error {
	cfg, err := root.LoadConfig(cmd)
	if err != nil {
		return err
	}
	root.ApplyAmountFlags(cmd, cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	_, err = common.VerifyFiles(c, args[0], args[1], cfg.Report.Format, cmd.OutOrStdout())
	return err
}
