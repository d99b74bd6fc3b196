// Package verifier compares an original QFX document with its converted form
// and reports whether the conversion rules hold.
//
// Amounts are paired by their order in each document; the format carries no
// key usable for matching, so reordered transactions fail verification.
package verifier

import (
	"fmt"

	"fjacquet/qfx-rebank/internal/fileutils"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/qfx"
)

// NotFound is shown for an identifier tag that does not occur.
const NotFound = "Not found"

// SampleSize is the number of amount pairs kept for display.
const SampleSize = 3

// Options tells the verifier what the conversion was asked to do.
type Options struct {
	TargetFID     string
	TargetBID     string
	InvertAmounts bool
}

// Verify compares original and converted text. It reads both and changes neither.
func Verify(original, converted string, opts Options) *models.VerificationReport {
	orig := qfx.NewDocument(original)
	conv := qfx.NewDocument(converted)

	origFID, origBID := orig.Find(qfx.TagFID), orig.Find(qfx.TagBID)
	convFID, convBID := conv.Find(qfx.TagFID), conv.Find(qfx.TagBID)

	origAmounts := orig.Find(qfx.TagAmount)
	convAmounts := conv.Find(qfx.TagAmount)

	report := &models.VerificationReport{
		TargetFID:    opts.TargetFID,
		TargetBID:    opts.TargetBID,
		OriginalFID:  firstValue(origFID),
		ConvertedFID: firstValue(convFID),
		OriginalBID:  firstValue(origBID),
		ConvertedBID: firstValue(convBID),
		FIDChanged:   allEqual(convFID, opts.TargetFID),
		BIDChanged:   allEqual(convBID, opts.TargetBID),

		OriginalTransactions:  qfx.CountTransactions(orig),
		ConvertedTransactions: qfx.CountTransactions(conv),
		OriginalAmounts:       len(origAmounts),
		ConvertedAmounts:      len(convAmounts),
	}
	report.CountMatch = report.OriginalAmounts == report.ConvertedAmounts

	report.Deltas = pairs(origAmounts, convAmounts)
	report.SampleDeltas = report.Deltas
	if len(report.SampleDeltas) > SampleSize {
		report.SampleDeltas = report.SampleDeltas[:SampleSize]
	}

	if opts.InvertAmounts {
		flipped := compareAmounts(origAmounts, convAmounts, func(o, c models.Amount) bool {
			return c.IsInverseOf(o)
		})
		report.SignsFlipped = &flipped
	} else {
		preserved := compareAmounts(origAmounts, convAmounts, func(o, c models.Amount) bool {
			return c.Equal(o)
		})
		report.AmountsPreserved = &preserved
	}

	report.OverallSuccess = len(report.FailedChecks()) == 0
	return report
}

// VerifyFiles reads both files and verifies them.
func VerifyFiles(originalPath, convertedPath string, opts Options) (*models.VerificationReport, error) {
	original, err := fileutils.ReadTextFile(originalPath)
	if err != nil {
		return nil, fmt.Errorf("reading original: %w", err)
	}
	converted, err := fileutils.ReadTextFile(convertedPath)
	if err != nil {
		return nil, fmt.Errorf("reading converted: %w", err)
	}
	return Verify(original, converted, opts), nil
}

func firstValue(occ []qfx.Occurrence) string {
	if len(occ) == 0 {
		return NotFound
	}
	return occ[0].Value
}

// allEqual is true when tag occurs at least once and every value is target.
func allEqual(occ []qfx.Occurrence, target string) bool {
	if len(occ) == 0 {
		return false
	}
	for _, o := range occ {
		if o.Value != target {
			return false
		}
	}
	return true
}

func pairs(orig, conv []qfx.Occurrence) []models.AmountPair {
	n := min(len(orig), len(conv))
	out := make([]models.AmountPair, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.AmountPair{Index: i + 1, Before: orig[i].Value, After: conv[i].Value})
	}
	return out
}

// compareAmounts applies match to every ordinal pair. Differing counts or
// unparsable amounts fail.
func compareAmounts(orig, conv []qfx.Occurrence, match func(o, c models.Amount) bool) bool {
	if len(orig) != len(conv) {
		return false
	}
	for i := range orig {
		o, err := models.ParseAmount(orig[i].Value)
		if err != nil {
			return false
		}
		c, err := models.ParseAmount(conv[i].Value)
		if err != nil {
			return false
		}
		if !match(o, c) {
			return false
		}
	}
	return true
}
