// Package qfx locates the handful of tagged fields the converter touches in a
// QFX/OFX document. It is not a general OFX parser: tags are addressed by
// exact name and their values by byte span, so everything else in the
// document can be passed through untouched.
package qfx

import (
	"regexp"
	"sort"
	"strings"
)

// Tags read or rewritten by the converter.
const (
	TagFID         = "FID"
	TagBID         = "INTU.BID"
	TagDTStart     = "DTSTART"
	TagDTEnd       = "DTEND"
	TagDTPosted    = "DTPOSTED"
	TagAmount      = "TRNAMT"
	TagTransaction = "STMTTRN"
	TagRoot        = "OFX"
)

var (
	headerLine  = regexp.MustCompile(`^([A-Z][A-Z0-9.]*):(.*)$`)
	elementLine = regexp.MustCompile(`<([A-Z][A-Z0-9.]*)>([^<\r\n]*)`)
	tagPatterns = compileTagPatterns(TagFID, TagBID, TagDTStart, TagDTEnd, TagDTPosted, TagAmount)
)

// Document is a read-only view over the raw text of a QFX file.
type Document struct {
	text string
}

// NewDocument wraps text. The text is never modified.
func NewDocument(text string) *Document {
	return &Document{text: text}
}

// Text returns the raw document text.
func (d *Document) Text() string {
	return d.text
}

// Lines splits the document into lines, each keeping its own terminator.
func (d *Document) Lines() []string {
	if d.text == "" {
		return nil
	}
	return strings.SplitAfter(d.text, "\n")
}

// Field is a TAG:VALUE header line or a <TAG>value element with a value.
type Field struct {
	Tag    string
	Value  string
	Line   int
	Header bool
}

// Fields lists header lines and valued elements in document order. Line
// numbers start at 1.
func (d *Document) Fields() []Field {
	var fields []Field
	for i, line := range d.Lines() {
		trimmed := strings.TrimRight(line, "\r\n")
		if m := headerLine.FindStringSubmatch(trimmed); m != nil {
			fields = append(fields, Field{Tag: m[1], Value: strings.TrimSpace(m[2]), Line: i + 1, Header: true})
			continue
		}
		for _, m := range elementLine.FindAllStringSubmatch(trimmed, -1) {
			if v := strings.TrimSpace(m[2]); v != "" {
				fields = append(fields, Field{Tag: m[1], Value: v, Line: i + 1})
			}
		}
	}
	return fields
}

// HasTag reports whether <tag> appears at least once.
func (d *Document) HasTag(tag string) bool {
	return strings.Contains(d.text, "<"+tag+">")
}

// CountTag counts <tag> opening tags.
func (d *Document) CountTag(tag string) int {
	return strings.Count(d.text, "<"+tag+">")
}

// Occurrence is one value of a tag, located by its byte span in the text.
type Occurrence struct {
	Tag   string
	Value string
	Start int
	End   int
}

// Find returns every value of tag in document order. The value runs from the
// end of the opening tag (after any whitespace, line breaks included) up to the
// next '<' or whitespace, so both SGML (<FID>123) and XML (<FID>123</FID>)
// styles are handled, as is an SGML value written on the line after its tag.
// An empty value is located right after the opening tag.
func (d *Document) Find(tag string) []Occurrence {
	re := patternFor(tag)
	var out []Occurrence
	for _, loc := range re.FindAllStringSubmatchIndex(d.text, -1) {
		start, end := loc[2], loc[3]
		if start < 0 {
			// empty value: position right after the tag
			start, end = loc[1], loc[1]
		}
		out = append(out, Occurrence{
			Tag:   tag,
			Value: d.text[start:end],
			Start: start,
			End:   end,
		})
	}
	return out
}

// First returns the first value of tag.
func (d *Document) First(tag string) (Occurrence, bool) {
	occ := d.Find(tag)
	if len(occ) == 0 {
		return Occurrence{}, false
	}
	return occ[0], true
}

func patternFor(tag string) *regexp.Regexp {
	if re, ok := tagPatterns[tag]; ok {
		return re
	}
	return tagValuePattern(tag)
}

func tagValuePattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`<` + regexp.QuoteMeta(tag) + `>(?:\s*([^<\s]+))?`)
}

func compileTagPatterns(tags ...string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(tags))
	for _, tag := range tags {
		out[tag] = tagValuePattern(tag)
	}
	return out
}

// Edit replaces the bytes between Start and End with Value.
type Edit struct {
	Start int
	End   int
	Value string
}

// Rewrite applies non-overlapping edits to text and returns the new text.
// Bytes outside the edited spans are copied unchanged.
func Rewrite(text string, edits []Edit) string {
	if len(edits) == 0 {
		return text
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range sorted {
		b.WriteString(text[pos:e.Start])
		b.WriteString(e.Value)
		pos = e.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
