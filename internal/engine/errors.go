package engine

import "fmt"

// Syntax error codes. The root package re-exports them.
const (
	CodeEmptyInput             = "empty_input"
	CodeUnexpectedToken        = "unexpected_token"
	CodeInvalidLiteral         = "invalid_literal"
	CodeInvalidNumber          = "invalid_number"
	CodeUnterminatedString     = "unterminated_string"
	CodeNewlineInString        = "newline_in_string"
	CodeInvalidEscape          = "invalid_escape"
	CodeTrailingEscape         = "trailing_escape"
	CodeStringDecode           = "string_decode"
	CodeUnterminatedArray      = "unterminated_array"
	CodeExpectedItem           = "expected_item"
	CodeExpectedCommaOrBracket = "expected_comma_or_bracket"
	CodeUnterminatedObject     = "unterminated_object"
	CodeExpectedKey            = "expected_key"
	CodeMissingColon           = "missing_colon"
	CodeExpectedValue          = "expected_value"
	CodeExpectedCommaOrBrace   = "expected_comma_or_brace"
	CodeExtraData              = "extra_data"
	CodeMaxDepth               = "max_depth"
	CodeTooLarge               = "too_large"
	CodeDuplicateKey           = "duplicate_key"
)

// SyntaxError is a positioned failure raised while scanning.
type SyntaxError struct {
	Code    string
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string { return e.Message }

// Errorf builds a SyntaxError at pos.
func Errorf(code string, pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}
