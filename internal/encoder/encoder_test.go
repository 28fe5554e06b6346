package encoder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/bencview/internal/models"
	"github.com/mcncl/bencview/internal/parser"
)

func TestMarshal_Integer(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "i0e"},
		{42, "i42e"},
		{-6004, "i-6004e"},
		{9223372036854775807, "i9223372036854775807e"},
		{-9223372036854775808, "i-9223372036854775808e"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Marshal(models.Integer(tt.in))))
		})
	}
}

func TestMarshal_ByteString(t *testing.T) {
	assert.Equal(t, "4:spam", string(Marshal(models.ByteString([]byte("spam")))))
	assert.Equal(t, "0:", string(Marshal(models.ByteString(nil))))
}

func TestMarshal_List(t *testing.T) {
	v := models.List([]models.Value{
		models.ByteString([]byte("spam")),
		models.Integer(42),
	})
	assert.Equal(t, "l4:spami42ee", string(Marshal(v)))
}

func TestMarshal_DictionaryKeysAscending(t *testing.T) {
	d := models.NewDictionary()
	d.Set([]byte("foo"), models.Integer(42))
	d.Set([]byte("bar"), models.ByteString([]byte("spam")))

	assert.Equal(t, "d3:bar4:spam3:fooi42ee", string(Marshal(models.Dict(d))))
}

func TestMarshal_RoundTripsCanonicalInput(t *testing.T) {
	canonical := []string{
		"i0e",
		"i124223e",
		"i-121241e",
		"4:spam",
		"l4:spami42ee",
		"d3:bar4:spam3:fooi42ee",
		"d4:infod6:lengthi512e4:name8:demo.binee",
	}

	for _, doc := range canonical {
		t.Run(doc, func(t *testing.T) {
			v, rest, err := parser.ParseValue([]byte(doc))
			require.NoError(t, err)
			require.Empty(t, rest)
			assert.Equal(t, doc, string(Marshal(v)))
		})
	}
}

func TestMarshal_CanonicalIntegerRoundTrip(t *testing.T) {
	// parsing i<N>e and re-encoding N reproduces the original bytes for any
	// canonical N
	for _, n := range []int64{0, 1, -1, 42, 700454, -6004, 9223372036854775807} {
		doc := fmt.Sprintf("i%de", n)
		v, _, err := parser.ParseValue([]byte(doc))
		require.NoError(t, err)
		require.Equal(t, models.Integer(n), v)
		assert.Equal(t, doc, string(Marshal(v)))
	}
}

func TestMarshal_NormalizesUnorderedDictionaryInput(t *testing.T) {
	// the parser accepts out-of-order keys; re-encoding imposes the
	// canonical ascending order
	v, _, err := parser.ParseValue([]byte("d3:fooi42e3:bar4:spame"))
	require.NoError(t, err)
	assert.Equal(t, "d3:bar4:spam3:fooi42ee", string(Marshal(v)))
}
