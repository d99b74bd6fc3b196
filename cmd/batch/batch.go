// Package batch handles batch conversion of statement directories
package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/qfx-rebank/cmd/common"
	"fjacquet/qfx-rebank/cmd/root"
	"fjacquet/qfx-rebank/internal/batch"
	"fjacquet/qfx-rebank/internal/container"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/planner"
	"fjacquet/qfx-rebank/internal/scanner"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = New()

// New builds the batch command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Convert every QFX statement in a directory",
		Long: `Batch converts every .qfx/.ofx file in the input directory exactly like the convert
command does, one file at a time. Files that already carry a conversion suffix are skipped.
A failing file is reported and the remaining files are still converted.

Example:
  qfx-rebank batch downloads/ --recursive`,
		Args: cobra.ExactArgs(1),
		RunE: batchFunc,
	}

	cmd.Flags().StringP("output-dir", "o", "", "Output directory for every file (default: year of each statement)")
	cmd.Flags().BoolP("recursive", "r", false, "Also convert statements in subdirectories")
	cmd.Flags().Bool("no-verify", false, "Skip verification of the converted files")
	root.AddAmountFlags(cmd)

	return cmd
}

func batchFunc(cmd *cobra.Command, args []string) error {
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

	recursive, _ := cmd.Flags().GetBool("recursive")
	noVerify, _ := cmd.Flags().GetBool("no-verify")
	logger := c.GetLogger()

	files, err := scanner.NewStatementScanner(logger, planner.FileSuffix, planner.FallbackSuffix).Scan(args[0], recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No statement files found in input directory", logging.F("path", args[0]))
		return nil
	}
	logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	// statements covering the same period plan the same output path
	written := make(map[string]string)
	summary := batch.NewProcessor(logger).Run(files, func(inputFile string) (string, error) {
		outcome, err := common.ConvertFile(c, common.ConvertRequest{
			InputFile:    inputFile,
			OutputDir:    cfg.Output.Directory,
			Verify:       cfg.Verify.Enabled && !noVerify,
			ReportFormat: cfg.Report.Format,
			Claim: func(outputPath string) error {
				if prev, ok := written[outputPath]; ok {
					return fmt.Errorf("output %s already written from %s", outputPath, filepath.Base(prev))
				}
				written[outputPath] = inputFile
				return nil
			},
		}, io.Discard)
		if outcome != nil {
			return outcome.OutputPath, err
		}
		return "", err
	})

	printSummary(cmd.OutOrStdout(), summary)
	return summary.Err()
}

func printSummary(out io.Writer, summary batch.Summary) {
	for _, r := range summary.Results {
		name := filepath.Base(r.InputFile)
		if r.Err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", name, r.Err)
			continue
		}
		fmt.Fprintf(out, "✓ %s → %s\n", name, r.OutputPath)
	}
	fmt.Fprintf(out, "\n%d converted, %d failed\n", summary.Converted, summary.Failed)
}
