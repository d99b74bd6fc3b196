package models

import (
	"fmt"
	"time"

	"fjacquet/qfx-rebank/internal/dateutils"
)

// DateRange bounds the transactions contained in a statement. Start is never
// after End.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewDateRange builds a DateRange, rejecting ranges whose start is after their end.
func NewDateRange(start, end time.Time) (*DateRange, error) {
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s",
			dateutils.ToCompact(start), dateutils.ToCompact(end))
	}
	return &DateRange{Start: start, End: end}, nil
}

// Year is the four-digit year of the end date.
func (r DateRange) Year() string {
	return dateutils.ToYear(r.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", dateutils.ToCompact(r.Start), dateutils.ToCompact(r.End))
}
