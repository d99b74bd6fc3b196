package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/qfx-rebank/internal/converter"
	"fjacquet/qfx-rebank/internal/fileutils"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/planner"
	"fjacquet/qfx-rebank/internal/qfx"
	"fjacquet/qfx-rebank/internal/qfxtest"
	"fjacquet/qfx-rebank/internal/verifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlStatement = `<?xml version="1.0" encoding="UTF-8"?>
<?OFX OFXHEADER="200" VERSION="220" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>
<OFX>
  <SIGNONMSGSRSV1>
    <SONRS>
      <FI><ORG>B1</ORG><FID>3101</FID></FI>
      <INTU.BID>3101</INTU.BID>
    </SONRS>
  </SIGNONMSGSRSV1>
  <BANKMSGSRSV1><STMTTRNRS><STMTRS>
    <BANKTRANLIST>
      <DTSTART>20241201120000[-5:EST]</DTSTART>
      <DTEND>20241231120000[-5:EST]</DTEND>
      <STMTTRN><TRNTYPE>DEBIT</TRNTYPE><DTPOSTED>20241203</DTPOSTED><TRNAMT>-19.99</TRNAMT></STMTTRN>
      <STMTTRN><TRNTYPE>CREDIT</TRNTYPE><DTPOSTED>20241215</DTPOSTED><TRNAMT>1200.00</TRNAMT></STMTTRN>
    </BANKTRANLIST>
  </STMTRS></STMTTRNRS></BANKMSGSRSV1>
</OFX>
`

func crlfSample() string {
	s := qfxtest.Sample()
	s.CRLF = true
	return s.String()
}

// runPipeline converts input, writes it where the planner says and verifies
// the written file against the original.
func runPipeline(t *testing.T, dir, input string, invert bool) (string, string) {
	t.Helper()
	inputPath := filepath.Join(dir, "input.qfx")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0644))

	opts := converter.DefaultOptions()
	opts.InvertAmounts = invert
	logger := logging.NewMockLogger()

	content, err := fileutils.ReadTextFile(inputPath)
	require.NoError(t, err)
	res, err := converter.New(opts, logger).Convert(content)
	require.NoError(t, err)

	outputPath, err := planner.Resolve(planner.Request{
		InputPath:   inputPath,
		FallbackDir: "unsorted",
		Posted:      qfx.ExtractPostedDates(qfx.NewDocument(res.Content)),
	}, res.DateRange, logger)
	require.NoError(t, err)
	outputPath = filepath.Join(dir, outputPath)
	require.NoError(t, fileutils.WriteFile(outputPath, []byte(res.Content), 0644))

	report, err := verifier.VerifyFiles(inputPath, outputPath, verifier.Options{
		TargetFID:     opts.TargetFID,
		TargetBID:     opts.TargetBID,
		InvertAmounts: invert,
	})
	require.NoError(t, err)
	assert.True(t, report.OverallSuccess, "failed checks: %v", report.FailedChecks())

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	return outputPath, string(written)
}

func TestPipeline_Statements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"sgml", qfxtest.Sample().String(), filepath.Join("2025", "20250607-20250715_transactions.QFX")},
		{"sgml crlf", crlfSample(), filepath.Join("2025", "20250607-20250715_transactions.QFX")},
		{"xml", xmlStatement, filepath.Join("2024", "20241201-20241231_transactions.QFX")},
	}

	for _, tt := range tests {
		for _, invert := range []bool{true, false} {
			name := tt.name + "/keep"
			if invert {
				name = tt.name + "/invert"
			}
			t.Run(name, func(t *testing.T) {
				dir := t.TempDir()
				outputPath, _ := runPipeline(t, dir, tt.input, invert)
				assert.Equal(t, filepath.Join(dir, tt.wantPath), outputPath)
			})
		}
	}
}

// Lines without a routing identifier or amount come out byte for byte.
func TestPipeline_OnlyTargetLinesChange(t *testing.T) {
	for _, input := range []string{qfxtest.Sample().String(), crlfSample()} {
		_, output := runPipeline(t, t.TempDir(), input, true)

		in := strings.SplitAfter(input, "\n")
		out := strings.SplitAfter(output, "\n")
		require.Len(t, out, len(in))

		for i := range in {
			line := in[i]
			if strings.Contains(line, "<FID>") || strings.Contains(line, "<INTU.BID>") || strings.Contains(line, "<TRNAMT>") {
				continue
			}
			assert.Equal(t, line, out[i], "line %d", i+1)
		}
	}
}

// Converting twice restores the amounts and keeps the target identifiers.
func TestPipeline_DoubleInversionRestoresAmounts(t *testing.T) {
	original := qfxtest.Sample().String()
	conv := converter.New(converter.DefaultOptions(), logging.NewMockLogger())

	first, err := conv.Convert(original)
	require.NoError(t, err)
	second, err := conv.Convert(first.Content)
	require.NoError(t, err)

	doc := qfx.NewDocument(second.Content)
	assert.Equal(t, qfxtest.SampleAmounts, qfx.Values(doc.Find(qfx.TagAmount)))
	assert.Equal(t, []string{"10898"}, qfx.Values(doc.Find(qfx.TagFID)))
	assert.Equal(t, []string{"10898"}, second.SourceFIDs)
}

func TestPipeline_NoDateRangeFallsBack(t *testing.T) {
	stmt := qfxtest.Sample()
	stmt.DTStart, stmt.DTEnd = "", ""
	dir := t.TempDir()

	outputPath, _ := runPipeline(t, dir, stmt.String(), true)
	assert.Equal(t, filepath.Join(dir, "2025", "input_converted.QFX"), outputPath)
}
