package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Formats lists every format accepted by GenerateReport.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV}

// IsSupported reports whether format can be rendered.
func IsSupported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ReportGenerator renders verification reports.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// Files names the documents a report was built from. Text output shows them.
type Files struct {
	Original  string
	Converted string
}

// GenerateReport renders report in the given format.
func (g *ReportGenerator) GenerateReport(report *models.VerificationReport, files Files, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to render")
	}

	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(report, files), nil
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML:
		return g.generateYAMLReport(report)
	case FormatCSV:
		return g.generateCSVReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(report *models.VerificationReport, files Files) []byte {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	line("QFX Conversion Verification")
	line("===========================")
	line("")
	if files.Original != "" || files.Converted != "" {
		line("Original file:  %s", files.Original)
		line("Converted file: %s", files.Converted)
		line("")
	}

	line("FID (Financial Institution ID):")
	line("  Original:  %s", report.OriginalFID)
	line("  Converted: %s", report.ConvertedFID)
	line("  Status:    %s", mark(report.FIDChanged, "Changed to "+report.TargetFID, "Not set to "+report.TargetFID))
	line("")

	line("INTU.BID:")
	line("  Original:  %s", report.OriginalBID)
	line("  Converted: %s", report.ConvertedBID)
	line("  Status:    %s", mark(report.BIDChanged, "Changed to "+report.TargetBID, "Not set to "+report.TargetBID))
	line("")

	line("Transaction Count:")
	line("  Original:  %d", report.OriginalAmounts)
	line("  Converted: %d", report.ConvertedAmounts)
	line("  Status:    %s", mark(report.CountMatch, "Same", "Different"))
	line("")

	line("Transaction Amounts (first %d):", len(report.SampleDeltas))
	for _, d := range report.SampleDeltas {
		line("  %10s → %10s", d.Before, d.After)
	}
	if report.SignsFlipped != nil {
		line("  Status:    %s", mark(*report.SignsFlipped, "Signs reversed", "Signs not properly reversed"))
	}
	if report.AmountsPreserved != nil {
		line("  Status:    %s", mark(*report.AmountsPreserved, "Amounts unchanged", "Amounts changed"))
	}
	line("")

	line("Overall Status:")
	line("  %s", mark(report.OverallSuccess, "Conversion appears successful!", "Conversion may have issues"))
	if report.RunID != "" {
		line("")
		line("Run: %s", report.RunID)
	}
	return []byte(b.String())
}

func mark(ok bool, pass, fail string) string {
	if ok {
		return "✓ " + pass
	}
	return "✗ " + fail
}

func (g *ReportGenerator) generateJSONReport(report *models.VerificationReport) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func (g *ReportGenerator) generateYAMLReport(report *models.VerificationReport) ([]byte, error) {
	yamlReport, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return yamlReport, nil
}

// generateCSVReport writes one row per amount pair.
func (g *ReportGenerator) generateCSVReport(report *models.VerificationReport) ([]byte, error) {
	deltas := report.Deltas
	if deltas == nil {
		deltas = report.SampleDeltas
	}
	csvReport, err := gocsv.MarshalBytes(&deltas)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return csvReport, nil
}
