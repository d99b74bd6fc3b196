package models

// ConversionResult is produced once per conversion and not modified afterwards.
type ConversionResult struct {
	Content string

	// DateRange is nil when the document carries no usable range; DateRangeErr
	// then explains why.
	DateRange    *DateRange
	DateRangeErr error

	TransactionCount int
	AmountCount      int
	InvertedAmounts  bool

	SourceFIDs []string
	SourceBIDs []string
}
