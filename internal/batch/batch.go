// Package batch converts several statements in one run and collects the outcome
package batch

import (
	"fmt"
	"path/filepath"

	"fjacquet/qfx-rebank/internal/logging"
)

// ConvertFunc converts one input file and returns where the output went.
type ConvertFunc func(inputFile string) (outputPath string, err error)

// Result is the outcome for a single file.
type Result struct {
	InputFile  string
	OutputPath string
	Err        error
}

// Summary collects the results of a batch run in input order.
type Summary struct {
	Results   []Result
	Converted int
	Failed    int
}

// Err is non-nil when at least one file failed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed to convert", s.Failed, len(s.Results))
}

// Processor runs a ConvertFunc over a list of files. A failing file is
// logged and recorded; the remaining files are still processed.
type Processor struct {
	logger logging.Logger
}

// NewProcessor creates a new Processor instance
func NewProcessor(logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{logger: logger}
}

// Run converts every file with convert.
func (p *Processor) Run(files []string, convert ConvertFunc) Summary {
	summary := Summary{Results: make([]Result, 0, len(files))}

	for _, file := range files {
		outputPath, err := convert(file)
		summary.Results = append(summary.Results, Result{InputFile: file, OutputPath: outputPath, Err: err})

		if err != nil {
			summary.Failed++
			p.logger.WithError(err).Error("Failed to convert file",
				logging.F(logging.FieldInputFile, filepath.Base(file)))
			continue
		}
		summary.Converted++
		p.logger.Debug("Converted file",
			logging.F(logging.FieldInputFile, filepath.Base(file)),
			logging.F(logging.FieldOutputFile, outputPath))
	}

	p.logger.Info("Batch processing completed",
		logging.F("converted", summary.Converted),
		logging.F("failed", summary.Failed))
	return summary
}
