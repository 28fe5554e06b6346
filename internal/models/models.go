package models

import (
	"bytes"
	"sort"
)

// Kind tags the four bencode value variants.
type Kind int

const (
	KindInteger Kind = iota
	KindByteString
	KindList
	KindDictionary
)

// String returns the variant name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteString:
		return "byte-string"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the four bencode variants. Exactly one payload
// field is meaningful, selected by Kind.
//
// Bytes is a view into the buffer the value was parsed from, never a copy, so
// the buffer must outlive the tree. List and Dict own their containers while
// their leaf byte payloads stay borrowed. Bencode strings carry arbitrary
// bytes and are not guaranteed to be valid UTF-8.
type Value struct {
	Kind  Kind
	Int   int64
	Bytes []byte
	List  []Value
	Dict  *Dictionary
}

// Integer wraps an int64 as a Value.
func Integer(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

// ByteString wraps a borrowed byte span as a Value.
func ByteString(b []byte) Value {
	return Value{Kind: KindByteString, Bytes: b}
}

// List wraps a sequence of values, in parse order, as a Value.
func List(items []Value) Value {
	return Value{Kind: KindList, List: items}
}

// Dict wraps a dictionary as a Value.
func Dict(d *Dictionary) Value {
	return Value{Kind: KindDictionary, Dict: d}
}

// Entry is one key/value pair of a Dictionary. Key is a view into the parsed
// buffer, like every byte-string payload.
type Entry struct {
	Key   []byte
	Value Value
}

// Dictionary is an ordered mapping from byte-string keys to values. Keys are
// unique and iterate in ascending byte-lexicographic order regardless of the
// order they were inserted in. Inserting an existing key overwrites its value.
type Dictionary struct {
	entries []Entry
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// Set inserts or overwrites the value for key, keeping entries sorted.
func (d *Dictionary) Set(key []byte, v Value) {
	i := sort.Search(len(d.entries), func(i int) bool {
		return bytes.Compare(d.entries[i].Key, key) >= 0
	})
	if i < len(d.entries) && bytes.Equal(d.entries[i].Key, key) {
		d.entries[i].Value = v
		return
	}
	d.entries = append(d.entries, Entry{})
	copy(d.entries[i+1:], d.entries[i:])
	d.entries[i] = Entry{Key: key, Value: v}
}

// Get returns the value stored for key, if any.
func (d *Dictionary) Get(key []byte) (Value, bool) {
	i := sort.Search(len(d.entries), func(i int) bool {
		return bytes.Compare(d.entries[i].Key, key) >= 0
	})
	if i < len(d.entries) && bytes.Equal(d.entries[i].Key, key) {
		return d.entries[i].Value, true
	}
	return Value{}, false
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Entries returns the pairs in ascending byte-lexicographic key order. The
// returned slice is the dictionary's backing storage; callers must not
// reorder it.
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Keys returns the keys in ascending byte-lexicographic order.
func (d *Dictionary) Keys() [][]byte {
	keys := make([][]byte, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}
