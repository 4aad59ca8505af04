package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("decoded bytes are not valid UTF-8")

// Base64Encode encodes the UTF-8 bytes of input with the standard padded alphabet.
func Base64Encode(input string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(input)), nil
}

var errEmbeddedNewline = errors.New("line break inside base64 data")

// Base64Decode decodes standard padded Base64. Surrounding whitespace is
// ignored; a line break inside the data is rejected.
func Base64Decode(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	var decoded []byte
	err := errEmbeddedNewline
	if !strings.ContainsAny(trimmed, "\r\n") {
		decoded, err = base64.StdEncoding.Strict().DecodeString(trimmed)
	}
	if err != nil {
		return "", &OperationError{
			Operation: "base64_decode",
			Message:   "invalid base64 input",
			ErrorType: ErrorTypeDecode,
			Cause:     err,
		}
	}
	return toText("base64_decode", decoded)
}

// HexEncode renders the UTF-8 bytes of input as lowercase hexadecimal.
func HexEncode(input string) (string, error) {
	return hex.EncodeToString([]byte(input)), nil
}

// HexDecode decodes hexadecimal in either case. Surrounding whitespace is ignored.
func HexDecode(input string) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return "", &OperationError{
			Operation: "hex_decode",
			Message:   "invalid hex input",
			ErrorType: ErrorTypeDecode,
			Cause:     err,
		}
	}
	return toText("hex_decode", decoded)
}

// URLEncode percent-encodes controls, space, '"', '<', '>', '`' and every
// byte of a non-ASCII sequence. Everything else is copied through.
func URLEncode(input string) (string, error) {
	const upperhex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func shouldEscape(c byte) bool {
	switch {
	case c < 0x20, c == 0x7f, c >= 0x80:
		return true
	}
	switch c {
	case ' ', '"', '<', '>', '`':
		return true
	}
	return false
}

// URLDecode reverses percent-encoding. '+' is left as-is.
func URLDecode(input string) (string, error) {
	decoded, err := url.PathUnescape(input)
	if err != nil {
		return "", &OperationError{
			Operation: "url_decode",
			Message:   "invalid percent-encoding",
			ErrorType: ErrorTypeDecode,
			Cause:     err,
		}
	}
	return toText("url_decode", []byte(decoded))
}

// HTMLEncode replaces the five markup-significant characters with entities.
func HTMLEncode(input string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// htmlDecodeOrder is applied one replacement at a time. A later pass can
// produce text an earlier pass would have matched: "&amp;lt;" yields "&lt;".
var htmlDecodeOrder = [][2]string{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", "\""},
	{"&#x27;", "'"},
}

// HTMLDecode reverses HTMLEncode by sequential literal replacement.
func HTMLDecode(input string) (string, error) {
	out := input
	for _, pair := range htmlDecodeOrder {
		out = strings.ReplaceAll(out, pair[0], pair[1])
	}
	return out, nil
}

func toText(operation string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &OperationError{
			Operation: operation,
			Message:   "invalid UTF-8 in decoded output",
			ErrorType: ErrorTypeDecode,
			Cause:     errInvalidUTF8,
		}
	}
	return string(b), nil
}
