// Package planner decides where a converted statement is written.
package planner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/qfx-rebank/internal/dateutils"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/qfxerror"
)

const (
	// FileSuffix ends every planned file name.
	FileSuffix = "_transactions.QFX"
	// FallbackSuffix replaces the input extension when no date range exists.
	FallbackSuffix = "_converted.QFX"
)

// Plan derives the output directory (year of the end date) and file name
// (<start>-<end>_transactions.QFX) from a date range.
func Plan(r *models.DateRange) (dir, file string, err error) {
	if r == nil {
		return "", "", &qfxerror.MissingDateRangeError{}
	}
	file = fmt.Sprintf("%s-%s%s", dateutils.ToCompact(r.Start), dateutils.ToCompact(r.End), FileSuffix)
	return r.Year(), file, nil
}

// Fallback names the output when the document has no usable date range. The
// directory is the year of the latest posted transaction, or fallbackDir when
// there is none.
func Fallback(inputPath string, posted []time.Time, fallbackDir string) (dir, file string) {
	dir = fallbackDir
	if latest, ok := dateutils.Latest(posted); ok {
		dir = dateutils.ToYear(latest)
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return dir, stem + FallbackSuffix
}

// Request carries the caller's overrides. Empty fields mean "derive it".
type Request struct {
	InputPath   string
	OutputDir   string
	OutputFile  string
	FallbackDir string
	Posted      []time.Time
}

// Resolve returns the full output path for a conversion, applying overrides
// and falling back when the date range is missing.
func Resolve(req Request, r *models.DateRange, logger logging.Logger) (string, error) {
	dir, file, err := Plan(r)
	if err != nil {
		var missing *qfxerror.MissingDateRangeError
		if !errors.As(err, &missing) {
			return "", err
		}
		dir, file = Fallback(req.InputPath, req.Posted, req.FallbackDir)
		if logger != nil {
			logger.Warn("No date range in document, using fallback output name",
				logging.F(logging.FieldOutputDir, dir),
				logging.F(logging.FieldOutputFile, file))
		}
	}

	if req.OutputDir != "" {
		dir = req.OutputDir
	}
	if req.OutputFile != "" {
		file = req.OutputFile
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, file), nil
}
