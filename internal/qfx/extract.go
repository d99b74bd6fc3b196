package qfx

import (
	"fmt"
	"time"

	"fjacquet/qfx-rebank/internal/dateutils"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/qfxerror"
)

// RoutingIDs holds every value found for the two routing-identifier tags.
type RoutingIDs struct {
	FID []Occurrence
	BID []Occurrence
}

// Values returns the raw values of occ.
func Values(occ []Occurrence) []string {
	out := make([]string, 0, len(occ))
	for _, o := range occ {
		out = append(out, o.Value)
	}
	return out
}

// ExtractRoutingIDs finds every <FID> and <INTU.BID> value. Both tags are
// required; their values do not have to agree.
func ExtractRoutingIDs(doc *Document) (RoutingIDs, error) {
	ids := RoutingIDs{
		FID: doc.Find(TagFID),
		BID: doc.Find(TagBID),
	}
	if len(ids.FID) == 0 {
		return RoutingIDs{}, &qfxerror.MissingFieldError{Field: TagFID}
	}
	if len(ids.BID) == 0 {
		return RoutingIDs{}, &qfxerror.MissingFieldError{Field: TagBID}
	}
	return ids, nil
}

// ExtractDateRange reads the first <DTSTART> and <DTEND> values. Any problem is
// reported as a MissingDateRangeError.
func ExtractDateRange(doc *Document) (*models.DateRange, error) {
	startOcc, ok := doc.First(TagDTStart)
	if !ok {
		return nil, &qfxerror.MissingDateRangeError{Reason: fmt.Sprintf("<%s> not found", TagDTStart)}
	}
	endOcc, ok := doc.First(TagDTEnd)
	if !ok {
		return nil, &qfxerror.MissingDateRangeError{Reason: fmt.Sprintf("<%s> not found", TagDTEnd)}
	}

	start, err := dateutils.ParseQFXDate(startOcc.Value)
	if err != nil {
		return nil, &qfxerror.MissingDateRangeError{Reason: fmt.Sprintf("<%s>: %v", TagDTStart, err)}
	}
	end, err := dateutils.ParseQFXDate(endOcc.Value)
	if err != nil {
		return nil, &qfxerror.MissingDateRangeError{Reason: fmt.Sprintf("<%s>: %v", TagDTEnd, err)}
	}

	r, err := models.NewDateRange(start, end)
	if err != nil {
		return nil, &qfxerror.MissingDateRangeError{Reason: err.Error()}
	}
	return r, nil
}

// AmountToken is a parsed <TRNAMT> value and where it sits in the text.
// Its position in the returned slice is its identity.
type AmountToken struct {
	Occurrence
	Amount models.Amount
}

// ExtractAmounts parses every <TRNAMT> value in document order.
func ExtractAmounts(doc *Document) ([]AmountToken, error) {
	occ := doc.Find(TagAmount)
	tokens := make([]AmountToken, 0, len(occ))
	for i, o := range occ {
		amt, err := models.ParseAmount(o.Value)
		if err != nil {
			return nil, &qfxerror.MalformedDocumentError{
				Reason:  fmt.Sprintf("transaction amount #%d is not a decimal number", i+1),
				Snippet: o.Value,
			}
		}
		tokens = append(tokens, AmountToken{Occurrence: o, Amount: amt})
	}
	return tokens, nil
}

// CountTransactions counts <STMTTRN> records.
func CountTransactions(doc *Document) int {
	return doc.CountTag(TagTransaction)
}

// ExtractPostedDates parses every <DTPOSTED> value, skipping unreadable ones.
func ExtractPostedDates(doc *Document) []time.Time {
	var dates []time.Time
	for _, o := range doc.Find(TagDTPosted) {
		if d, err := dateutils.ParseQFXDate(o.Value); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}
