package formatter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/bencview/internal/models"
)

// Formatter renders a parsed bencode tree as indented human-readable text
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders the value tree rooted at v, one node per line, nested
// nodes indented under their parent.
func (f *Formatter) Format(v models.Value) string {
	var sb strings.Builder
	f.writeValue(&sb, v, 0)
	return sb.String()
}

func (f *Formatter) writeValue(sb *strings.Builder, v models.Value, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v.Kind {
	case models.KindInteger:
		fmt.Fprintf(sb, "%s%d\n", indent, v.Int)
	case models.KindByteString:
		fmt.Fprintf(sb, "%s%s\n", indent, renderBytes(v.Bytes))
	case models.KindList:
		fmt.Fprintf(sb, "%slist (%d items)\n", indent, len(v.List))
		for _, item := range v.List {
			f.writeValue(sb, item, depth+1)
		}
	case models.KindDictionary:
		fmt.Fprintf(sb, "%sdictionary (%d entries)\n", indent, v.Dict.Len())
		childIndent := strings.Repeat("  ", depth+1)
		for _, e := range v.Dict.Entries() {
			switch e.Value.Kind {
			case models.KindList, models.KindDictionary:
				fmt.Fprintf(sb, "%s%s:\n", childIndent, renderBytes(e.Key))
				f.writeValue(sb, e.Value, depth+2)
			case models.KindInteger:
				fmt.Fprintf(sb, "%s%s: %d\n", childIndent, renderBytes(e.Key), e.Value.Int)
			default:
				fmt.Fprintf(sb, "%s%s: %s\n", childIndent, renderBytes(e.Key), renderBytes(e.Value.Bytes))
			}
		}
	}
}

// renderBytes shows printable byte strings quoted and everything else as a
// byte count with a short hex preview. Torrent metadata mixes both freely
// (piece hashes next to file names), so neither form alone reads well.
func renderBytes(b []byte) string {
	if isPrintable(b) {
		return fmt.Sprintf("%q", b)
	}
	const previewLen = 8
	preview := b
	ellipsis := ""
	if len(preview) > previewLen {
		preview = preview[:previewLen]
		ellipsis = "..."
	}
	return fmt.Sprintf("<%d bytes: %x%s>", len(b), preview, ellipsis)
}

func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
