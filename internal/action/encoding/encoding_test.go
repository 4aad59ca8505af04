package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii", input: "Hello, World!", want: "SGVsbG8sIFdvcmxkIQ=="},
		{name: "empty", input: "", want: ""},
		{name: "one byte padding", input: "ab", want: "YWI="},
		{name: "multibyte", input: "héllo", want: "aMOpbGxv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Base64Encode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, encoded)

			decoded, err := Base64Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.input, decoded)
		})
	}
}

func TestBase64Decode_TrimsWhitespace(t *testing.T) {
	got, err := Base64Decode("  SGVsbG8=\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestBase64Decode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid alphabet", input: "not base64!"},
		{name: "url-safe alphabet", input: "_-8="},
		{name: "missing padding", input: "YWI"},
		{name: "non utf-8 bytes", input: "/w=="},
		{name: "embedded newline", input: "SGVs\nbG8="},
		{name: "embedded crlf", input: "SGVs\r\nbG8="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Base64Decode(tt.input)
			require.Error(t, err)

			var opErr *OperationError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, "base64_decode", opErr.Operation)
			assert.Equal(t, ErrorTypeDecode, opErr.ErrorType)
			assert.False(t, opErr.IsRetryable())
		})
	}
}

func TestHex(t *testing.T) {
	encoded, err := HexEncode("Hello, World!")
	require.NoError(t, err)
	assert.Equal(t, "48656c6c6f2c20576f726c6421", encoded)

	decoded, err := HexDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", decoded)

	upper, err := HexDecode(" 48454C4C4F ")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", upper)
}

func TestHexDecode_Errors(t *testing.T) {
	for _, input := range []string{"abc", "zz", "ff"} {
		t.Run(input, func(t *testing.T) {
			_, err := HexDecode(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "hex_decode")
		})
	}
}

func TestURLEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "space and ampersand", input: "Hello World & Friends", want: "Hello%20World%20&%20Friends"},
		{name: "fragment set", input: "<a href=\"x\">`", want: "%3Ca%20href=%22x%22%3E%60"},
		{name: "controls", input: "a\tb\n\x7f", want: "a%09b%0A%7F"},
		{name: "reserved left alone", input: "a/b?c=d#e%", want: "a/b?c=d#e%"},
		{name: "non-ascii bytes", input: "€", want: "%E2%82%AC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := URLEncode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestURLDecode(t *testing.T) {
	got, err := URLDecode("Hello%20World%20&%20Friends")
	require.NoError(t, err)
	assert.Equal(t, "Hello World & Friends", got)

	plus, err := URLDecode("a+b")
	require.NoError(t, err)
	assert.Equal(t, "a+b", plus)

	euro, err := URLDecode("%e2%82%ac")
	require.NoError(t, err)
	assert.Equal(t, "€", euro)
}

func TestURLDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated escape", input: "abc%2"},
		{name: "non-hex escape", input: "%zz"},
		{name: "invalid utf-8", input: "%ff%fe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := URLDecode(tt.input)
			require.Error(t, err)

			var opErr *OperationError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, ErrorTypeDecode, opErr.ErrorType)
		})
	}
}

func TestURLRoundTrip(t *testing.T) {
	for _, input := range []string{"", "plain", "a b\"c<d>e`f", "日本語 テキスト", "tab\there"} {
		encoded, err := URLEncode(input)
		require.NoError(t, err)
		decoded, err := URLDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestHTML(t *testing.T) {
	encoded, err := HTMLEncode(`<script>alert("x" & 'y')</script>`)
	require.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot; &amp; &#x27;y&#x27;)&lt;/script&gt;", encoded)

	decoded, err := HTMLDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, `<script>alert("x" & 'y')</script>`, decoded)
}

func TestHTMLDecode_Sequential(t *testing.T) {
	// "&amp;" is replaced after "&lt;", so the "&lt;" it produces survives.
	got, err := HTMLDecode("&amp;lt;")
	require.NoError(t, err)
	assert.Equal(t, "&lt;", got)

	// Other entities are not part of the table.
	got, err = HTMLDecode("&copy; &#60;")
	require.NoError(t, err)
	assert.Equal(t, "&copy; &#60;", got)
}
