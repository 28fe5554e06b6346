package parser

import (
	"bytes"
	"testing"

	"github.com/mcncl/bencview/internal/encoder"
)

// FuzzParseValue pins the total-function guarantee: for arbitrary byte input
// the parser returns a value or an error, never panics, and never reads past
// the buffer. Successful parses must also survive a canonical re-encode.
func FuzzParseValue(f *testing.F) {
	seeds := [][]byte{
		[]byte("i0e"),
		[]byte("i-6004e"),
		[]byte("i0001e"),
		[]byte("i-0e"),
		[]byte("i9223372036854775808e"),
		[]byte("4:spam"),
		[]byte("4:spa"),
		[]byte("0:"),
		[]byte("l4:spami42ee"),
		[]byte("le"),
		[]byte("d3:bar4:spam3:fooi42ee"),
		[]byte("d3:fooi1e3:fooi2ee"),
		[]byte("de"),
		[]byte("i42e4:spam"),
		[]byte("lli1eee"),
		[]byte(""),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		v, rest, err := ParseValue(data)
		if err != nil {
			return
		}
		if len(rest) > len(data) {
			t.Fatalf("remainder longer than input: %d > %d", len(rest), len(data))
		}

		// the consumed prefix re-encodes canonically, and that canonical
		// form must parse back to a tree with the identical encoding
		enc := encoder.Marshal(v)
		v2, rest2, err := ParseValue(enc)
		if err != nil {
			t.Fatalf("re-encoded value failed to parse: %v (encoding %q)", err, enc)
		}
		if len(rest2) != 0 {
			t.Fatalf("re-encoded value left %d bytes unconsumed", len(rest2))
		}
		if !bytes.Equal(enc, encoder.Marshal(v2)) {
			t.Fatalf("canonical encoding is not a fixed point: %q vs %q", enc, encoder.Marshal(v2))
		}
	})
}
