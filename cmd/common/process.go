// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/qfx-rebank/internal/container"
	"fjacquet/qfx-rebank/internal/fileutils"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/planner"
	"fjacquet/qfx-rebank/internal/qfx"
	"fjacquet/qfx-rebank/internal/qfxerror"
	"fjacquet/qfx-rebank/internal/report"
	"fjacquet/qfx-rebank/internal/verifier"

	"github.com/google/uuid"
)

// ConvertRequest describes one convert invocation. Empty OutputDir and
// OutputFile are derived from the document. Claim, when set, is called with
// the planned output path before anything is written; an error aborts the
// conversion.
type ConvertRequest struct {
	InputFile    string
	OutputDir    string
	OutputFile   string
	Verify       bool
	ReportFormat string
	Claim        func(outputPath string) error
}

// ConvertOutcome is what a conversion produced. Report is nil when
// verification was skipped.
type ConvertOutcome struct {
	RunID      string
	OutputPath string
	Result     *models.ConversionResult
	Report     *models.VerificationReport
}

// ConvertFile reads, converts and writes one document, then verifies the
// written file when asked to. A failed verification returns
// *qfxerror.VerificationFailure together with the outcome; the output file
// stays on disk.
func ConvertFile(c *container.Container, req ConvertRequest, out io.Writer) (*ConvertOutcome, error) {
	runID := uuid.NewString()
	log := c.GetLogger().WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldInputFile, req.InputFile))

	log.Info("Starting conversion")

	content, err := fileutils.ReadTextFile(req.InputFile)
	if err != nil {
		return nil, err
	}

	result, err := c.GetConverter().Convert(content)
	if err != nil {
		return nil, withFilePath(err, req.InputFile)
	}

	outputPath, err := planner.Resolve(planner.Request{
		InputPath:   req.InputFile,
		OutputDir:   req.OutputDir,
		OutputFile:  req.OutputFile,
		FallbackDir: c.GetConfig().Output.FallbackDirectory,
		Posted:      qfx.ExtractPostedDates(qfx.NewDocument(result.Content)),
	}, result.DateRange, log)
	if err != nil {
		return nil, fmt.Errorf("error planning output path: %w", err)
	}
	if req.Claim != nil {
		if err := req.Claim(outputPath); err != nil {
			log.Warn("Output path already in use", logging.F(logging.FieldOutputFile, outputPath))
			return nil, err
		}
	}

	if err := fileutils.WriteFile(outputPath, []byte(result.Content), 0644); err != nil {
		return nil, fmt.Errorf("error writing converted file: %w", err)
	}
	log.Info("Converted file written",
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldCount, result.TransactionCount))

	outcome := &ConvertOutcome{RunID: runID, OutputPath: outputPath, Result: result}
	if !req.Verify {
		if isText(req.ReportFormat) {
			fmt.Fprintf(out, "Converted file saved to: %s\n", outputPath)
		}
		return outcome, nil
	}

	rep, err := verifyAndRender(c, runID, req.InputFile, outputPath, req.ReportFormat, out)
	outcome.Report = rep
	return outcome, err
}

// VerifyFiles compares two existing files and renders the report to out. A
// failed verification returns *qfxerror.VerificationFailure with the report.
func VerifyFiles(c *container.Container, originalFile, convertedFile, format string, out io.Writer) (*models.VerificationReport, error) {
	return verifyAndRender(c, uuid.NewString(), originalFile, convertedFile, format, out)
}

func verifyAndRender(c *container.Container, runID, originalFile, convertedFile, format string, out io.Writer) (*models.VerificationReport, error) {
	log := c.GetLogger().WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldInputFile, originalFile),
		logging.F(logging.FieldOutputFile, convertedFile))

	rep, err := verifier.VerifyFiles(originalFile, convertedFile, c.VerifierOptions())
	if err != nil {
		return nil, err
	}
	rep.RunID = runID

	rendered, err := c.GetReportGenerator().GenerateReport(rep, report.Files{
		Original:  originalFile,
		Converted: convertedFile,
	}, format)
	if err != nil {
		return rep, err
	}
	if _, err := out.Write(rendered); err != nil {
		return rep, fmt.Errorf("error writing report: %w", err)
	}

	if !rep.OverallSuccess {
		failed := rep.FailedChecks()
		log.Warn("Verification failed", logging.F(logging.FieldReason, failed))
		return rep, &qfxerror.VerificationFailure{OutputPath: convertedFile, FailedChecks: failed}
	}
	log.Info("Verification passed", logging.F(logging.FieldStatus, "ok"))
	return rep, nil
}

// withFilePath names the input file in document errors that lack one.
func withFilePath(err error, filePath string) error {
	var malformed *qfxerror.MalformedDocumentError
	if errors.As(err, &malformed) && malformed.FilePath == "" {
		malformed.FilePath = filePath
	}
	return err
}

func isText(format string) bool {
	return format == "" || format == report.FormatText
}
