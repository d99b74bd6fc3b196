package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a transaction amount as written in the document together with its
// decimal value. Raw keeps the exact token so rewriting preserves scale.
type Amount struct {
	Raw   string
	Value decimal.Decimal
}

// ParseAmount parses a <TRNAMT> token such as "-92.59", "+3" or "145.00".
func ParseAmount(raw string) (Amount, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Amount{}, fmt.Errorf("empty amount")
	}
	if unsigned := strings.TrimLeft(token, "+-"); len(token)-len(unsigned) > 1 {
		return Amount{}, fmt.Errorf("invalid amount string '%s': more than one sign", raw)
	}
	dec, err := decimal.NewFromString(strings.TrimPrefix(token, "+"))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount string '%s': %w", raw, err)
	}
	return Amount{Raw: token, Value: dec}, nil
}

// Invert returns the amount with its sign flipped, keeping the digits of the
// original token. Zero amounts come back unsigned.
func (a Amount) Invert() Amount {
	digits := strings.TrimLeft(a.Raw, "+-")
	switch {
	case a.Value.IsZero():
		return Amount{Raw: digits, Value: decimal.Zero}
	case strings.HasPrefix(a.Raw, "-"):
		return Amount{Raw: digits, Value: a.Value.Neg()}
	default:
		return Amount{Raw: "-" + digits, Value: a.Value.Neg()}
	}
}

// IsNegativeZero reports whether the token is a zero written with a minus sign.
func (a Amount) IsNegativeZero() bool {
	return a.Value.IsZero() && strings.HasPrefix(a.Raw, "-")
}

// IsInverseOf reports whether a is the sign inversion of other. A zero only
// counts as inverted when it is not written as "-0".
func (a Amount) IsInverseOf(other Amount) bool {
	if a.IsNegativeZero() {
		return false
	}
	return a.Value.Equal(other.Value.Neg())
}

// Equal compares values, ignoring formatting.
func (a Amount) Equal(other Amount) bool {
	return a.Value.Equal(other.Value)
}

func (a Amount) String() string {
	return a.Raw
}

// AmountPair is an (original, converted) amount at the same ordinal position.
type AmountPair struct {
	Index  int    `json:"index" yaml:"index" csv:"index"`
	Before string `json:"before" yaml:"before" csv:"original"`
	After  string `json:"after" yaml:"after" csv:"converted"`
}
