package loosejson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/loosejson/internal/engine"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeEmptyInput             = engine.CodeEmptyInput
	CodeUnexpectedToken        = engine.CodeUnexpectedToken
	CodeInvalidLiteral         = engine.CodeInvalidLiteral
	CodeInvalidNumber          = engine.CodeInvalidNumber
	CodeUnterminatedString     = engine.CodeUnterminatedString
	CodeNewlineInString        = engine.CodeNewlineInString
	CodeInvalidEscape          = engine.CodeInvalidEscape
	CodeTrailingEscape         = engine.CodeTrailingEscape
	CodeUnterminatedArray      = engine.CodeUnterminatedArray
	CodeExpectedItem           = engine.CodeExpectedItem
	CodeExpectedCommaOrBracket = engine.CodeExpectedCommaOrBracket
	CodeUnterminatedObject     = engine.CodeUnterminatedObject
	CodeExpectedKey            = engine.CodeExpectedKey
	CodeMissingColon           = engine.CodeMissingColon
	CodeExpectedValue          = engine.CodeExpectedValue
	CodeExpectedCommaOrBrace   = engine.CodeExpectedCommaOrBrace
	CodeExtraData              = engine.CodeExtraData
	CodeMaxDepth               = engine.CodeMaxDepth
	CodeTooLarge               = engine.CodeTooLarge
	CodeDuplicateKey           = engine.CodeDuplicateKey
	// Semantic failure while converting string contents.
	CodeStringDecode = engine.CodeStringDecode
	// Encoding
	CodeNotEncodable  = "not_encodable"
	CodeNonStringKey  = "non_string_key"
	CodeSelfReference = "self_reference"
	// Issue-only
	CodeTruncated = "truncated"
)

// Position locates a byte in the input: Line is 1-based, Column is the
// 0-based byte offset within that line.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// DecodeError reports why a text could not be decoded.
type DecodeError struct {
	Code    string
	Message string
	Pos     Position
	Path    string // JSON Pointer of the value being decoded ("/" for the root).
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s (lineno %d, offset %d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// EncodeError reports why a value could not be encoded.
type EncodeError struct {
	Code    string
	Message string
	Path    string
}

func (e *EncodeError) Error() string {
	if e.Path == "" || e.Path == "/" {
		return e.Message
	}
	return e.Message + " at " + e.Path
}

// Issue is a non-fatal diagnostic.
type Issue struct {
	Path    string
	Code    string
	Message string
	Pos     Position
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsDecodeError extracts a *DecodeError using errors.As internally.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsEncodeError extracts an *EncodeError using errors.As internally.
func AsEncodeError(err error) (*EncodeError, bool) {
	if err == nil {
		return nil, false
	}
	var ee *EncodeError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func fromSyntax(se *engine.SyntaxError, path string) *DecodeError {
	return &DecodeError{
		Code:    se.Code,
		Message: se.Message,
		Pos:     Position(se.Pos),
		Path:    path,
	}
}
