// Package encoder serializes a parsed value tree back to canonical bencode.
// The parser never needs it; it exists for callers that want to re-emit what
// they parsed, and for round-trip checks against the parser.
package encoder

import (
	"bytes"
	"strconv"

	"github.com/mcncl/bencview/internal/models"
)

// Marshal returns the canonical bencode encoding of v. Dictionary keys are
// emitted in ascending byte-lexicographic order, which the Dictionary's
// iteration already guarantees, so a tree parsed from canonical input
// re-encodes to the same bytes.
func Marshal(v models.Value) []byte {
	var buf bytes.Buffer
	appendValue(&buf, v)
	return buf.Bytes()
}

func appendValue(buf *bytes.Buffer, v models.Value) {
	switch v.Kind {
	case models.KindInteger:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(v.Int, 10))
		buf.WriteByte('e')
	case models.KindByteString:
		appendBytes(buf, v.Bytes)
	case models.KindList:
		buf.WriteByte('l')
		for _, item := range v.List {
			appendValue(buf, item)
		}
		buf.WriteByte('e')
	case models.KindDictionary:
		buf.WriteByte('d')
		for _, e := range v.Dict.Entries() {
			appendBytes(buf, e.Key)
			appendValue(buf, e.Value)
		}
		buf.WriteByte('e')
	}
}

func appendBytes(buf *bytes.Buffer, b []byte) {
	buf.WriteString(strconv.Itoa(len(b)))
	buf.WriteByte(':')
	buf.Write(b)
}
