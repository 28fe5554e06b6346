package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	ErrTruncated     = errors.New("declared length exceeds remaining input")
	ErrIntegerRange  = errors.New("integer does not fit in 64 bits")
	ErrDictOrder     = errors.New("dictionary keys are not in lexicographic order")
	ErrNoInput       = errors.New("no input provided: please specify a file with -i or pipe bencode data to stdin")
	ErrFileNotFound  = errors.New("file not found")
	ErrFileEmpty     = errors.New("file is empty")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeGrammar    ErrorType = "grammar"
	ErrorTypeTruncation ErrorType = "truncation"
	ErrorTypeConversion ErrorType = "conversion"
	// ErrorTypeDictOrder is reserved for the dictionary key-ordering rule.
	// The dictionary parser currently accepts unordered input, so nothing
	// constructs this type yet.
	ErrorTypeDictOrder ErrorType = "dictionary-order"
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeOutput    ErrorType = "output"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// ParseError is a structured parse failure. Rule names the grammar rule that
// failed, Input holds the unconsumed input at the failure point, and Err is
// the inner failure frame, if any. Frames stack as parsing unwinds, so the
// rendered message reads outermost rule first.
type ParseError struct {
	Type    ErrorType
	Rule    string
	Message string
	Input   []byte
	Err     error
}

// Error implements error interface
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Rule != "" {
		msg = e.Rule + ": " + msg
	}
	if len(e.Input) > 0 {
		msg = fmt.Sprintf("%s at %q", msg, snippet(e.Input))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns wrapped error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Remaining walks the frame stack and returns the unconsumed input captured
// by the innermost frame, i.e. the furthest point parsing reached before
// failing. The second result is false when err carries no input snapshot.
func Remaining(err error) ([]byte, bool) {
	var rem []byte
	found := false
	for err != nil {
		pe, ok := err.(*ParseError)
		if !ok {
			break
		}
		if pe.Input != nil {
			rem = pe.Input
			found = true
		}
		err = pe.Err
	}
	return rem, found
}

// snippet truncates the unconsumed input for display
func snippet(in []byte) []byte {
	const max = 16
	if len(in) > max {
		return in[:max]
	}
	return in
}

// NewGrammarError creates a new error for a grammar rule that did not match
func NewGrammarError(rule, message string, input []byte, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeGrammar,
		Rule:    rule,
		Message: message,
		Input:   input,
		Err:     err,
	}
}

// NewTruncationError creates a new error for a byte string shorter than its declared length
func NewTruncationError(message string, input []byte, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeTruncation,
		Rule:    "byte-string",
		Message: message,
		Input:   input,
		Err:     err,
	}
}

// NewConversionError creates a new error for a digit span that does not fit the fixed-width integer
func NewConversionError(message string, input []byte, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeConversion,
		Message: message,
		Input:   input,
		Err:     err,
	}
}

// NewDictOrderError creates a new error for dictionary keys appearing out of
// lexicographic order. Reserved: the dictionary parser does not raise it.
func NewDictOrderError(message string, input []byte) *ParseError {
	return &ParseError{
		Type:    ErrorTypeDictOrder,
		Rule:    "dictionary",
		Message: message,
		Input:   input,
		Err:     ErrDictOrder,
	}
}

// NewInputError creates a new error related to acquiring input
func NewInputError(message string, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing output
func NewOutputError(message string, err error) *ParseError {
	return &ParseError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		switch parseErr.Type {
		case ErrorTypeGrammar:
			return fmt.Sprintf("Bencode syntax error: %s", parseErr.Error())
		case ErrorTypeTruncation:
			return fmt.Sprintf("Truncated input: %s", parseErr.Message)
		case ErrorTypeConversion:
			return fmt.Sprintf("Integer out of range: %s", parseErr.Message)
		case ErrorTypeDictOrder:
			return fmt.Sprintf("Dictionary ordering error: %s", parseErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", parseErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", parseErr.Message)
		default:
			return fmt.Sprintf("Error: %s", parseErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide bencoded data."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe bencode data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with bencoded content."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
