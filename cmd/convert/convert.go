// Package convert handles the QFX conversion command
package convert

import (
	"fjacquet/qfx-rebank/cmd/common"
	"fjacquet/qfx-rebank/cmd/root"
	"fjacquet/qfx-rebank/internal/container"
	"fjacquet/qfx-rebank/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = New()

// New builds the convert command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a QFX statement to the target institution",
		Long: `Convert rewrites every <FID> and <INTU.BID> value to the target routing identifier,
inverts transaction amount signs unless --keep-amounts is given, and writes the result
to <year>/<start>-<end>_transactions.QFX based on the statement's date range.

The input defaults to transactions.qfx (input.default_file).`,
		Args: cobra.MaximumNArgs(1),
		RunE: convertFunc,
	}

	cmd.Flags().StringP("output-dir", "o", "", "Output directory (default: year of the statement end date)")
	cmd.Flags().StringP("output-file", "f", "", "Output file name (default: <start>-<end>_transactions.QFX)")
	cmd.Flags().Bool("no-verify", false, "Skip verification of the converted file")
	root.AddAmountFlags(cmd)
	root.AddReportFlag(cmd)

	return cmd
}

func convertFunc(cmd *cobra.Command, args []string) error {
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

	input := cfg.Input.DefaultFile
	if len(args) == 1 {
		input = args[0]
	}
	outputFile, _ := cmd.Flags().GetString("output-file")
	noVerify, _ := cmd.Flags().GetBool("no-verify")

	c.GetLogger().Info("QFX convert command called",
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldInvert, cfg.Amounts.Invert))

	_, err = common.ConvertFile(c, common.ConvertRequest{
		InputFile:    input,
		OutputDir:    cfg.Output.Directory,
		OutputFile:   outputFile,
		Verify:       cfg.Verify.Enabled && !noVerify,
		ReportFormat: cfg.Report.Format,
	}, cmd.OutOrStdout())
	return err
}
