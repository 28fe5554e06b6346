// Package parser implements a recursive-descent parser for bencode
// (https://www.bittorrent.org/beps/bep_0003.html#bencoding).
//
// Bencode allows four kinds of values: integers, byte strings, lists and
// dictionaries. Every parsing function is a pure function from an input byte
// slice to a result plus the unconsumed remainder; byte-string payloads in
// the result are views into the input buffer, so the buffer must outlive the
// returned tree.
package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mcncl/bencview/internal/errors"
	"github.com/mcncl/bencview/internal/models"
)

// isNonZeroDigit reports whether b is an ASCII digit in 1-9.
func isNonZeroDigit(b byte) bool {
	return b >= '1' && b <= '9'
}

// isDigit reports whether b is an ASCII digit in 0-9.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// digits0 consumes zero or more ASCII digits.
func digits0(in []byte) (digits, rest []byte) {
	i := 0
	for i < len(in) && isDigit(in[i]) {
		i++
	}
	return in[:i], in[i:]
}

// tag consumes the single literal byte c, failing against the named rule.
func tag(rule string, in []byte, c byte) ([]byte, error) {
	if len(in) == 0 {
		return in, errors.NewGrammarError(rule, fmt.Sprintf("expected %q", c), in, errors.ErrUnexpectedEnd)
	}
	if in[0] != c {
		return in, errors.NewGrammarError(rule, fmt.Sprintf("expected %q", c), in, nil)
	}
	return in[1:], nil
}

// positiveSpan recognizes one non-zero digit followed by any further digits,
// which is the canonical form of every positive integer: a leading zero can
// never match.
func positiveSpan(in []byte) (span, rest []byte, ok bool) {
	if len(in) == 0 || !isNonZeroDigit(in[0]) {
		return nil, in, false
	}
	low, rest := digits0(in[1:])
	return in[:1+len(low)], rest, true
}

// negativeSpan recognizes a minus sign followed immediately by the positive
// form. Negative zero and negative leading-zero forms can never match.
func negativeSpan(in []byte) (span, rest []byte, ok bool) {
	if len(in) == 0 || in[0] != '-' {
		return nil, in, false
	}
	pos, rest, ok := positiveSpan(in[1:])
	if !ok {
		return nil, in, false
	}
	return in[:1+len(pos)], rest, true
}

// zeroSpan recognizes the single literal digit 0.
func zeroSpan(in []byte) (span, rest []byte, ok bool) {
	if len(in) == 0 || in[0] != '0' {
		return nil, in, false
	}
	return in[:1], in[1:], true
}

// ParseInteger parses a bencode integer: an i marker, the enclosed canonical
// digit span, and a closing e marker. The span is returned raw, without
// numeric conversion; ParseValue performs the int64 conversion. Leading
// zeros and negative zero are rejected.
//
// The alternatives are tried in a fixed order: positive form, negative form,
// literal zero.
func ParseInteger(input []byte) (span, rest []byte, err error) {
	rest, err = tag("integer", input, 'i')
	if err != nil {
		return nil, input, err
	}

	span, rest, ok := positiveSpan(rest)
	if !ok {
		span, rest, ok = negativeSpan(rest)
	}
	if !ok {
		span, rest, ok = zeroSpan(rest)
	}
	if !ok {
		return nil, input, errors.NewGrammarError("integer", "expected canonical digit sequence", rest, nil)
	}

	rest, err = tag("integer", rest, 'e')
	if err != nil {
		return nil, input, err
	}
	return span, rest, nil
}

// ParseByteString parses a bencode byte string: an unsigned decimal length
// prefix, a colon, then exactly length bytes. The returned bytes are a view
// into input, not a copy. Bencode strings carry arbitrary bytes, so they are
// byte strings rather than text.
func ParseByteString(input []byte) (s, rest []byte, err error) {
	digits, rest := digits0(input)
	if len(digits) == 0 {
		if len(input) == 0 {
			return nil, input, errors.NewGrammarError("byte-string", "expected length prefix", input, errors.ErrUnexpectedEnd)
		}
		return nil, input, errors.NewGrammarError("byte-string", "expected length prefix", input, nil)
	}

	length, convErr := strconv.ParseUint(string(digits), 10, 64)
	if convErr != nil {
		return nil, input, errors.NewConversionError("length prefix does not fit in 64 bits", input, errors.ErrIntegerRange)
	}

	rest, err = tag("byte-string", rest, ':')
	if err != nil {
		return nil, input, err
	}

	if uint64(len(rest)) < length {
		msg := fmt.Sprintf("declared length %d, only %d bytes remain", length, len(rest))
		return nil, input, errors.NewTruncationError(msg, rest, errors.ErrTruncated)
	}
	n := int(length)
	return rest[:n], rest[n:], nil
}

// ParseList parses a bencode list: an l marker, one or more values, and a
// closing e marker. Elements keep their parse order and need not share a
// kind.
//
// An empty list "le" is invalid under this grammar, which requires at least
// one element. BEP-3 permits empty lists; the divergence is inherited and
// deliberate.
func ParseList(input []byte) (items []models.Value, rest []byte, err error) {
	rest, err = tag("list", input, 'l')
	if err != nil {
		return nil, input, err
	}

	v, r, verr := ParseValue(rest)
	if verr != nil {
		return nil, input, errors.NewGrammarError("list", "expected at least one element", rest, verr)
	}
	items = append(items, v)
	rest = r

	for {
		v, r, verr = ParseValue(rest)
		if verr != nil {
			break
		}
		items = append(items, v)
		rest = r
	}

	rest, err = tag("list", rest, 'e')
	if err != nil {
		// keep the element failure that ended the loop in the trace
		return nil, input, errors.NewGrammarError("list", "expected closing 'e'", rest, verr)
	}
	return items, rest, nil
}

// ParseDictionary parses a bencode dictionary: a d marker, one or more
// (byte-string key, value) pairs, and a closing e marker. Pairs are folded
// into an ordered mapping; a duplicate key overwrites the earlier value and
// is not an error.
//
// BEP-3 requires keys to appear in ascending byte order in the input. That
// rule is not verified here: input key order is accepted as-is and ascending
// order is only imposed on the resulting mapping's iteration. An empty
// dictionary "de" is invalid under this grammar, as with ParseList.
func ParseDictionary(input []byte) (dict *models.Dictionary, rest []byte, err error) {
	rest, err = tag("dictionary", input, 'd')
	if err != nil {
		return nil, input, err
	}

	dict = models.NewDictionary()
	var kerr error
	for {
		var key, r []byte
		key, r, kerr = ParseByteString(rest)
		if kerr != nil {
			if dict.Len() == 0 {
				return nil, input, errors.NewGrammarError("dictionary", "expected at least one key", rest, kerr)
			}
			break
		}
		v, r, verr := ParseValue(r)
		if verr != nil {
			return nil, input, errors.NewGrammarError("dictionary", fmt.Sprintf("expected value for key %q", key), r, verr)
		}
		dict.Set(key, v)
		rest = r
	}

	rest, err = tag("dictionary", rest, 'e')
	if err != nil {
		// keep the key failure that ended the loop in the trace
		return nil, input, errors.NewGrammarError("dictionary", "expected closing 'e'", rest, kerr)
	}
	return dict, rest, nil
}

// ParseValue parses the next bencode value of any kind. It tries the four
// rules in a fixed order (integer, byte string, list, dictionary) and
// wraps the first success in the corresponding Value variant. Lists and
// dictionaries recurse through here for each nested element, so this is the
// whole engine's entry point: parsing a document is calling ParseValue once
// on the full buffer and deciding what to do with the remainder.
//
// When every rule fails, the returned error wraps the sub-failure that
// consumed the most input before failing.
func ParseValue(input []byte) (models.Value, []byte, error) {
	span, rest, intErr := ParseInteger(input)
	if intErr == nil {
		n, convErr := strconv.ParseInt(string(span), 10, 64)
		if convErr != nil {
			// The span already matched the canonical integer grammar, so the
			// only possible failure is the int64 range. Retrying the other
			// rules is pointless: nothing else starts with an i marker.
			msg := fmt.Sprintf("%q overflows the signed 64-bit range", span)
			return models.Value{}, input, errors.NewConversionError(msg, input, errors.ErrIntegerRange)
		}
		return models.Integer(n), rest, nil
	}

	s, rest, strErr := ParseByteString(input)
	if strErr == nil {
		return models.ByteString(s), rest, nil
	}

	items, rest, listErr := ParseList(input)
	if listErr == nil {
		return models.List(items), rest, nil
	}

	dict, rest, dictErr := ParseDictionary(input)
	if dictErr == nil {
		return models.Dict(dict), rest, nil
	}

	deepest := deepestFailure(input, intErr, strErr, listErr, dictErr)
	return models.Value{}, input, errors.NewGrammarError("value", "no bencode value matched", input, deepest)
}

// deepestFailure picks the alternative whose innermost frame left the least
// input unconsumed, i.e. the rule that got furthest before failing. Ties
// keep dispatch priority order.
func deepestFailure(input []byte, alts ...error) error {
	best := alts[0]
	bestLen := remainingLen(input, alts[0])
	for _, e := range alts[1:] {
		if l := remainingLen(input, e); l < bestLen {
			best, bestLen = e, l
		}
	}
	return best
}

func remainingLen(input []byte, err error) int {
	if rem, ok := errors.Remaining(err); ok {
		return len(rem)
	}
	return len(input)
}

// ParseBytes parses exactly one value from buf and returns it together with
// the unconsumed remainder. Trailing bytes are not an error here; whether
// they are acceptable is the caller's decision.
func ParseBytes(buf []byte) (models.Value, []byte, error) {
	if len(buf) == 0 {
		return models.Value{}, nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return ParseValue(buf)
}

// ParseString parses bencode from a string. The returned tree references the
// byte conversion of s, which the tree keeps alive.
func ParseString(s string) (models.Value, []byte, error) {
	if s == "" {
		return models.Value{}, nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseValue([]byte(s))
}

// ParseReader reads r to the end and parses one value from the contents. The
// returned tree references the buffer read here.
func ParseReader(r io.Reader) (models.Value, []byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return models.Value{}, nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(buf)
}

// ParseFile parses one value from the named file.
func ParseFile(filePath string) (models.Value, []byte, error) {
	if filePath == "" {
		return models.Value{}, nil, errors.NewInputError("file path is empty", nil)
	}
	buf, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(buf) == 0 {
		return models.Value{}, nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(buf)
}
