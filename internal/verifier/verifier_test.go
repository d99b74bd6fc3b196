package verifier

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/qfx-rebank/internal/converter"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/models"
	"fjacquet/qfx-rebank/internal/qfxerror"
	"fjacquet/qfx-rebank/internal/qfxtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{TargetFID: "10898", TargetBID: "10898", InvertAmounts: true}
}

func convert(t *testing.T, text string, invert bool) string {
	t.Helper()
	opts := converter.DefaultOptions()
	opts.InvertAmounts = invert
	res, err := converter.New(opts, logging.NewMockLogger()).Convert(text)
	require.NoError(t, err)
	return res.Content
}

func TestVerify_SuccessfulConversion(t *testing.T) {
	original := qfxtest.Sample().String()
	converted := convert(t, original, true)

	report := Verify(original, converted, defaultOptions())

	assert.True(t, report.OverallSuccess)
	assert.True(t, report.FIDChanged)
	assert.True(t, report.BIDChanged)
	assert.True(t, report.CountMatch)
	require.NotNil(t, report.SignsFlipped)
	assert.True(t, *report.SignsFlipped)
	assert.Nil(t, report.AmountsPreserved)

	assert.Equal(t, "12139", report.OriginalFID)
	assert.Equal(t, "10898", report.ConvertedFID)
	assert.Equal(t, "12139", report.OriginalBID)
	assert.Equal(t, "10898", report.ConvertedBID)
	assert.Equal(t, 7, report.OriginalTransactions)
	assert.Equal(t, 7, report.ConvertedTransactions)
	assert.Equal(t, 7, report.OriginalAmounts)
	assert.Empty(t, report.FailedChecks())
}

func TestVerify_SampleDeltas(t *testing.T) {
	original := qfxtest.Sample().String()
	converted := convert(t, original, true)

	report := Verify(original, converted, defaultOptions())

	assert.Equal(t, []models.AmountPair{
		{Index: 1, Before: "-92.59", After: "92.59"},
		{Index: 2, Before: "145.00", After: "-145.00"},
		{Index: 3, Before: "0", After: "0"},
	}, report.SampleDeltas)
	assert.Len(t, report.Deltas, 7)
}

func TestVerify_FewerThanThreeAmounts(t *testing.T) {
	stmt := qfxtest.Sample()
	stmt.Amounts = []string{"-1.00"}
	original := stmt.String()

	report := Verify(original, convert(t, original, true), defaultOptions())

	assert.True(t, report.OverallSuccess)
	assert.Len(t, report.SampleDeltas, 1)
}

func TestVerify_KeepAmounts(t *testing.T) {
	original := qfxtest.Sample().String()
	converted := convert(t, original, false)
	opts := defaultOptions()
	opts.InvertAmounts = false

	report := Verify(original, converted, opts)

	assert.True(t, report.OverallSuccess)
	assert.Nil(t, report.SignsFlipped)
	require.NotNil(t, report.AmountsPreserved)
	assert.True(t, *report.AmountsPreserved)
}

func TestVerify_UnchangedDocumentFails(t *testing.T) {
	original := qfxtest.Sample().String()

	report := Verify(original, original, defaultOptions())

	assert.False(t, report.OverallSuccess)
	assert.False(t, report.FIDChanged)
	assert.False(t, report.BIDChanged)
	assert.True(t, report.CountMatch)
	require.NotNil(t, report.SignsFlipped)
	assert.False(t, *report.SignsFlipped, "zero stays zero but the other amounts did not flip")
	assert.Equal(t, []string{"FID", "INTU.BID", "amount signs"}, report.FailedChecks())
}

func TestVerify_OneAmountNotFlipped(t *testing.T) {
	original := qfxtest.Sample().String()
	converted := convert(t, original, true)
	converted = strings.Replace(converted, "<TRNAMT>92.59", "<TRNAMT>-92.59", 1)

	report := Verify(original, converted, defaultOptions())

	assert.False(t, report.OverallSuccess)
	assert.True(t, report.FIDChanged)
	assert.False(t, *report.SignsFlipped)
}

func TestVerify_NegativeZeroIsNotAFlip(t *testing.T) {
	stmt := qfxtest.Sample()
	stmt.Amounts = []string{"0.00"}
	original := stmt.String()
	converted := strings.Replace(convert(t, original, true), "<TRNAMT>0.00", "<TRNAMT>-0.00", 1)

	report := Verify(original, converted, defaultOptions())

	assert.False(t, *report.SignsFlipped)
	assert.False(t, report.OverallSuccess)
}

func TestVerify_CountMismatch(t *testing.T) {
	original := qfxtest.Sample().String()
	stmt := qfxtest.Sample()
	stmt.FID, stmt.BID = "10898", "10898"
	stmt.Amounts = []string{"92.59", "-145.00"}
	converted := stmt.String()

	report := Verify(original, converted, defaultOptions())

	assert.False(t, report.CountMatch)
	assert.False(t, *report.SignsFlipped)
	assert.False(t, report.OverallSuccess)
	assert.Equal(t, 7, report.OriginalAmounts)
	assert.Equal(t, 2, report.ConvertedAmounts)
	assert.Len(t, report.SampleDeltas, 2)
	assert.Contains(t, report.FailedChecks(), "transaction count")
}

func TestVerify_MissingIdentifiers(t *testing.T) {
	stmt := qfxtest.Sample()
	stmt.FID, stmt.BID = "", ""
	text := stmt.String()

	report := Verify(text, text, defaultOptions())

	assert.Equal(t, NotFound, report.OriginalFID)
	assert.Equal(t, NotFound, report.ConvertedFID)
	assert.Equal(t, NotFound, report.OriginalBID)
	assert.False(t, report.FIDChanged)
	assert.False(t, report.BIDChanged)
	assert.False(t, report.OverallSuccess)
}

func TestVerify_PartiallyRewrittenIdentifiers(t *testing.T) {
	original := "<OFX><FID>1</FID><INTU.BID>2</INTU.BID><FID>3</FID></OFX>"
	converted := "<OFX><FID>10898</FID><INTU.BID>10898</INTU.BID><FID>3</FID></OFX>"

	report := Verify(original, converted, defaultOptions())

	assert.False(t, report.FIDChanged)
	assert.True(t, report.BIDChanged)
}

func TestVerify_DoesNotModifyInputs(t *testing.T) {
	original := qfxtest.Sample().String()
	converted := convert(t, original, true)
	origCopy, convCopy := strings.Clone(original), strings.Clone(converted)

	Verify(original, converted, defaultOptions())

	assert.Equal(t, origCopy, original)
	assert.Equal(t, convCopy, converted)
}

func TestVerifyFiles(t *testing.T) {
	dir := t.TempDir()
	original := qfxtest.Sample().String()
	origPath := filepath.Join(dir, "original.qfx")
	convPath := filepath.Join(dir, "converted.QFX")
	require.NoError(t, os.WriteFile(origPath, []byte(original), 0644))
	require.NoError(t, os.WriteFile(convPath, []byte(convert(t, original, true)), 0644))

	report, err := VerifyFiles(origPath, convPath, defaultOptions())
	require.NoError(t, err)
	assert.True(t, report.OverallSuccess)
}

func TestVerifyFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	origPath := filepath.Join(dir, "original.qfx")
	require.NoError(t, os.WriteFile(origPath, []byte(qfxtest.Sample().String()), 0644))

	_, err := VerifyFiles(origPath, filepath.Join(dir, "missing.QFX"), defaultOptions())
	require.Error(t, err)

	var notFound *qfxerror.FileNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, qfxerror.ExitFileNotFound, qfxerror.ExitCode(err))
}
