// Package converter rewrites a QFX document so it appears to come from another
// institution: routing identifiers are replaced and, optionally, every
// transaction amount changes sign.
package converter

import (
	"fmt"

	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/qfx"
	"fjacquet/qfx-rebank/internal/qfxerror"
)

// DefaultTargetID is the routing identifier written when none is configured.
const DefaultTargetID = "10898"

// Options controls a conversion.
type Options struct {
	TargetFID     string
	TargetBID     string
	InvertAmounts bool
}

// DefaultOptions rewrites both identifiers to DefaultTargetID and inverts amounts.
func DefaultOptions() Options {
	return Options{
		TargetFID:     DefaultTargetID,
		TargetBID:     DefaultTargetID,
		InvertAmounts: true,
	}
}

// Converter applies Options to document text.
type Converter struct {
	opts   Options
	logger logging.Logger
}

// New creates a Converter. A nil logger falls back to a default logrus adapter.
func New(opts Options, logger logging.Logger) *Converter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Converter{opts: opts, logger: logger}
}

// Options returns the options the converter was built with.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert returns the rewritten document. The date range is extracted on the
// way but its absence is recorded in the result rather than returned.
func (c *Converter) Convert(content string) (*models.ConversionResult, error) {
	doc := qfx.NewDocument(content)

	if !doc.HasTag(qfx.TagRoot) {
		return nil, &qfxerror.MalformedDocumentError{Reason: fmt.Sprintf("no <%s> element found", qfx.TagRoot)}
	}

	fields := doc.Fields()
	c.logger.Debug("Reading document",
		logging.F(logging.FieldCount, len(fields)),
		logging.F(logging.FieldVersion, headerValue(fields, "VERSION")))

	ids, err := qfx.ExtractRoutingIDs(doc)
	if err != nil {
		return nil, err
	}

	amounts, err := qfx.ExtractAmounts(doc)
	if err != nil {
		return nil, err
	}

	txCount := qfx.CountTransactions(doc)
	if txCount != len(amounts) {
		return nil, &qfxerror.MalformedDocumentError{
			Reason: fmt.Sprintf("found %d <%s> records but %d <%s> amounts",
				txCount, qfx.TagTransaction, len(amounts), qfx.TagAmount),
		}
	}

	edits := make([]qfx.Edit, 0, len(ids.FID)+len(ids.BID)+len(amounts))
	edits = appendReplacements(edits, ids.FID, c.opts.TargetFID)
	edits = appendReplacements(edits, ids.BID, c.opts.TargetBID)
	c.logger.Debug("Rewriting routing identifiers",
		logging.F(logging.FieldTag, qfx.TagFID),
		logging.F(logging.FieldOccurrences, len(ids.FID)),
		logging.F(logging.FieldTarget, c.opts.TargetFID))
	c.logger.Debug("Rewriting routing identifiers",
		logging.F(logging.FieldTag, qfx.TagBID),
		logging.F(logging.FieldOccurrences, len(ids.BID)),
		logging.F(logging.FieldTarget, c.opts.TargetBID))

	if c.opts.InvertAmounts {
		for _, tok := range amounts {
			edits = append(edits, qfx.Edit{Start: tok.Start, End: tok.End, Value: tok.Amount.Invert().Raw})
		}
		c.logger.Debug("Inverting transaction amounts", logging.F(logging.FieldCount, len(amounts)))
	}

	result := &models.ConversionResult{
		Content:          qfx.Rewrite(content, edits),
		TransactionCount: txCount,
		AmountCount:      len(amounts),
		InvertedAmounts:  c.opts.InvertAmounts,
		SourceFIDs:       qfx.Values(ids.FID),
		SourceBIDs:       qfx.Values(ids.BID),
	}

	result.DateRange, result.DateRangeErr = qfx.ExtractDateRange(doc)
	if result.DateRangeErr != nil {
		c.logger.Warn("Document has no usable date range",
			logging.F(logging.FieldReason, result.DateRangeErr.Error()))
	}

	c.logger.Info("Converted document",
		logging.F(logging.FieldCount, txCount),
		logging.F(logging.FieldInvert, c.opts.InvertAmounts))
	return result, nil
}

func appendReplacements(edits []qfx.Edit, occ []qfx.Occurrence, target string) []qfx.Edit {
	for _, o := range occ {
		edits = append(edits, qfx.Edit{Start: o.Start, End: o.End, Value: target})
	}
	return edits
}

// headerValue returns the value of a TAG:VALUE header line, or "" for XML
// documents that carry none.
func headerValue(fields []qfx.Field, name string) string {
	for _, f := range fields {
		if f.Header && f.Tag == name {
			return f.Value
		}
	}
	return ""
}
