// Package qfxtest builds QFX documents for tests.
package qfxtest

import (
	"fmt"
	"strings"
)

// Statement describes a document to generate. Empty DTStart/DTEnd omit the
// tags; empty FID/BID omit the routing tags.
type Statement struct {
	FID     string
	BID     string
	DTStart string
	DTEnd   string
	Amounts []string
	CRLF    bool
}

// SampleAmounts are the amounts of the seven-record reference statement.
var SampleAmounts = []string{"-92.59", "145.00", "0", "-12.34", "250.00", "-7.50", "-1000.01"}

// Sample returns the reference statement: seven records, routing identifier
// 12139, transactions from 2025-06-07 to 2025-07-15.
func Sample() Statement {
	return Statement{
		FID:     "12139",
		BID:     "12139",
		DTStart: "20250607000000",
		DTEnd:   "20250715235959",
		Amounts: SampleAmounts,
	}
}

// String renders the statement as an SGML-style QFX file.
func (s Statement) String() string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		b.WriteString(fmt.Sprintf(format, args...))
		if s.CRLF {
			b.WriteString("\r\n")
		} else {
			b.WriteString("\n")
		}
	}

	line("OFXHEADER:100")
	line("DATA:OFXSGML")
	line("VERSION:102")
	line("SECURITY:NONE")
	line("ENCODING:USASCII")
	line("CHARSET:1252")
	line("COMPRESSION:NONE")
	line("OLDFILEUID:NONE")
	line("NEWFILEUID:NONE")
	line("")
	line("<OFX>")
	line("<SIGNONMSGSRSV1><SONRS>")
	line("<STATUS><CODE>0<SEVERITY>INFO</STATUS>")
	line("<DTSERVER>20250716083000.000")
	line("<LANGUAGE>ENG")
	if s.FID != "" {
		line("<FI><ORG>B1<FID>%s</FI>", s.FID)
	}
	if s.BID != "" {
		line("<INTU.BID>%s", s.BID)
	}
	line("</SONRS></SIGNONMSGSRSV1>")
	line("<CREDITCARDMSGSRSV1><CCSTMTTRNRS><TRNUID>1")
	line("<CCSTMTRS><CURDEF>USD<CCACCTFROM><ACCTID>XXXXXXXXXXXX1234</CCACCTFROM>")
	line("<BANKTRANLIST>")
	if s.DTStart != "" {
		line("<DTSTART>%s", s.DTStart)
	}
	if s.DTEnd != "" {
		line("<DTEND>%s", s.DTEnd)
	}
	for i, amt := range s.Amounts {
		line("<STMTTRN>")
		line("<TRNTYPE>%s", trnType(amt))
		line("<DTPOSTED>202506%02d120000.000", 10+i)
		line("<TRNAMT>%s", amt)
		line("<FITID>2025061%d0000%d", i, i+1)
		line("<NAME>MERCHANT %d", i+1)
		line("<MEMO>Purchase memo %d", i+1)
		line("</STMTTRN>")
	}
	line("</BANKTRANLIST>")
	line("<LEDGERBAL><BALAMT>-1234.56<DTASOF>20250715235959</LEDGERBAL>")
	line("</CCSTMTRS></CCSTMTTRNRS></CREDITCARDMSGSRSV1>")
	line("</OFX>")
	return b.String()
}

func trnType(amount string) string {
	if strings.HasPrefix(amount, "-") {
		return "DEBIT"
	}
	return "CREDIT"
}
