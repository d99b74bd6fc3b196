package qfx

import (
	"testing"

	"fjacquet/qfx-rebank/internal/qfxtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Lines(t *testing.T) {
	doc := NewDocument("A:1\r\n<OFX>\r\n</OFX>")
	assert.Equal(t, []string{"A:1\r\n", "<OFX>\r\n", "</OFX>"}, doc.Lines())
	assert.Nil(t, NewDocument("").Lines())
}

func TestDocument_Fields(t *testing.T) {
	doc := NewDocument(qfxtest.Statement{FID: "12139", BID: "12139", CRLF: true}.String())

	fields := doc.Fields()
	require.NotEmpty(t, fields)
	assert.Equal(t, Field{Tag: "OFXHEADER", Value: "100", Line: 1, Header: true}, fields[0])

	var fid *Field
	for i := range fields {
		if fields[i].Tag == TagFID {
			fid = &fields[i]
		}
	}
	require.NotNil(t, fid)
	assert.Equal(t, "12139", fid.Value)
	assert.False(t, fid.Header)
}

func TestDocument_FindDoesNotMatchLongerTags(t *testing.T) {
	doc := NewDocument("<FIDX>9<FID>1<TRNAMTX>5<TRNAMT> 2.50\n")

	assert.Equal(t, []string{"1"}, Values(doc.Find(TagFID)))
	occ := doc.Find(TagAmount)
	require.Len(t, occ, 1)
	assert.Equal(t, "2.50", occ[0].Value)
}

func TestDocument_FindEmptyValue(t *testing.T) {
	doc := NewDocument("<FID></FID>")
	occ := doc.Find(TagFID)
	require.Len(t, occ, 1)
	assert.Equal(t, "", occ[0].Value)
	assert.Equal(t, 5, occ[0].Start)
	assert.Equal(t, 5, occ[0].End)
}

func TestDocument_FindValueOnNextLine(t *testing.T) {
	text := "<STMTTRN>\n<TRNAMT>\n-5.00\n<FID>\n<NAME>x\n"
	doc := NewDocument(text)

	amounts := doc.Find(TagAmount)
	require.Len(t, amounts, 1)
	assert.Equal(t, "-5.00", amounts[0].Value)

	fids := doc.Find(TagFID)
	require.Len(t, fids, 1)
	assert.Equal(t, "", fids[0].Value)
	assert.Equal(t, len("<STMTTRN>\n<TRNAMT>\n-5.00\n<FID>"), fids[0].Start)

	out := Rewrite(text, []Edit{
		{Start: amounts[0].Start, End: amounts[0].End, Value: "5.00"},
		{Start: fids[0].Start, End: fids[0].End, Value: "123"},
	})
	assert.Equal(t, "<STMTTRN>\n<TRNAMT>\n5.00\n<FID>123\n<NAME>x\n", out)
}

func TestRewrite(t *testing.T) {
	text := "<A>1<B>22<C>3"
	out := Rewrite(text, []Edit{
		{Start: 12, End: 13, Value: "x"},
		{Start: 3, End: 4, Value: "one"},
	})
	assert.Equal(t, "<A>one<B>22<C>x", out)
	assert.Equal(t, "<A>1<B>22<C>3", text)
	assert.Equal(t, text, Rewrite(text, nil))
}

func TestDocument_CountTag(t *testing.T) {
	doc := NewDocument("<STMTTRNRS><STMTTRN></STMTTRN><STMTTRN>")
	assert.Equal(t, 2, doc.CountTag(TagTransaction))
	assert.True(t, doc.HasTag("STMTTRNRS"))
	assert.False(t, doc.HasTag(TagRoot))
}
