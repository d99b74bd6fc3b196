// Package dateutils parses and formats the date-time tokens used by QFX/OFX
// files (YYYYMMDD[HHMMSS[.XXX]][[gmt offset:tz name]]).
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used in QFX documents and in derived file names.
const (
	DateLayoutCompact = "20060102"
	DateLayoutYear    = "2006"
)

var datePrefix = regexp.MustCompile(`^(\d{8})`)

// ParseQFXDate parses the date part (first 8 digits) of a QFX date-time token.
// Any time, fraction or timezone suffix is ignored.
func ParseQFXDate(token string) (time.Time, error) {
	token = strings.TrimSpace(token)
	m := datePrefix.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, fmt.Errorf("unable to parse date token: %q", token)
	}
	t, err := time.Parse(DateLayoutCompact, m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date token %q: %w", token, err)
	}
	return t, nil
}

// ToCompact formats a date as YYYYMMDD.
func ToCompact(date time.Time) string {
	return date.Format(DateLayoutCompact)
}

// ToYear formats the four-digit year of a date.
func ToYear(date time.Time) string {
	return date.Format(DateLayoutYear)
}

// Latest returns the most recent date in dates and false when dates is empty.
func Latest(dates []time.Time) (time.Time, bool) {
	if len(dates) == 0 {
		return time.Time{}, false
	}
	latest := dates[0]
	for _, d := range dates[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}
