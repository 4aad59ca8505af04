package data

import (
	"bytes"
	"encoding/json"
	"errors"
)

// JSONPrettify re-renders a JSON document with two-space indentation.
// Object key order and number literals are preserved.
func JSONPrettify(input string) (string, error) {
	compact, err := compactJSON("json_prettify", input)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return "", parseError("json_prettify", err)
	}
	return out.String(), nil
}

// JSONMinify re-renders a JSON document without insignificant whitespace.
func JSONMinify(input string) (string, error) {
	compact, err := compactJSON("json_minify", input)
	if err != nil {
		return "", err
	}
	return string(compact), nil
}

// JSONValidate reports "Valid JSON" for a well-formed document and a parse
// error otherwise.
func JSONValidate(input string) (string, error) {
	if _, err := compactJSON("json_validate", input); err != nil {
		return "", err
	}
	return "Valid JSON", nil
}

func compactJSON(operation, input string) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Compact(&out, []byte(input)); err != nil {
		return nil, parseError(operation, err)
	}
	return out.Bytes(), nil
}

func parseError(operation string, err error) *OperationError {
	opErr := &OperationError{
		Operation: operation,
		Message:   "invalid JSON",
		ErrorType: ErrorTypeParseError,
		Cause:     err,
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		opErr.Position = syntaxErr.Offset
	}
	return opErr
}
