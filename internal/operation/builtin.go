package operation

import (
	"github.com/tombee/textchef/internal/action/cipher"
	"github.com/tombee/textchef/internal/action/data"
	"github.com/tombee/textchef/internal/action/encoding"
	"github.com/tombee/textchef/internal/action/hashing"
	"github.com/tombee/textchef/internal/action/text"
)

// BuiltinConfig holds configuration for the builtin catalog.
type BuiltinConfig struct {
	// NTLMDigest selects the digest behind ntlm_hash (default md5).
	NTLMDigest hashing.Digest
}

// Builtins returns the builtin catalog grouped by category in the order
// Encoding, Hashing, Text, Crypto, Data.
func Builtins(config *BuiltinConfig) []Entry {
	if config == nil {
		config = &BuiltinConfig{}
	}
	digest := config.NTLMDigest
	if digest == "" {
		digest = hashing.DigestMD5
	}

	return []Entry{
		// Encoding
		simple("base64_encode", CategoryEncoding, "Encode data to Base64", encoding.Base64Encode),
		simple("base64_decode", CategoryEncoding, "Decode data from Base64", encoding.Base64Decode),
		simple("url_encode", CategoryEncoding, "URL encode data", encoding.URLEncode),
		simple("url_decode", CategoryEncoding, "URL decode data", encoding.URLDecode),
		simple("html_encode", CategoryEncoding, "HTML entity encode", encoding.HTMLEncode),
		simple("html_decode", CategoryEncoding, "HTML entity decode", encoding.HTMLDecode),
		simple("hex_encode", CategoryEncoding, "Encode data to hexadecimal", encoding.HexEncode),
		simple("hex_decode", CategoryEncoding, "Decode data from hexadecimal", encoding.HexDecode),

		// Hashing
		simple("md5", CategoryHashing, "Calculate MD5 hash", hashing.MD5),
		simple("sha1", CategoryHashing, "Calculate SHA-1 hash", hashing.SHA1),
		simple("sha256", CategoryHashing, "Calculate SHA-256 hash", hashing.SHA256),
		simple("sha512", CategoryHashing, "Calculate SHA-512 hash", hashing.SHA512),
		simple("crc32", CategoryHashing, "Calculate CRC32 checksum", hashing.CRC32),
		simple("ntlm_hash", CategoryHashing, "Calculate NTLM hash (Windows password hash)", func(input string) (string, error) {
			return hashing.NTLMHashWith(input, digest)
		}),
		simple("lm_hash", CategoryHashing, "Calculate LM hash (Legacy Windows password hash)", hashing.LMHash),

		// Text
		simple("to_uppercase", CategoryText, "Convert text to uppercase", text.ToUppercase),
		simple("to_lowercase", CategoryText, "Convert text to lowercase", text.ToLowercase),
		simple("reverse", CategoryText, "Reverse text", text.Reverse),
		simple("reverse_words", CategoryText, "Reverse the order of words", text.ReverseWords),
		simple("count_characters", CategoryText, "Count characters and bytes", text.CountCharacters),
		simple("count_words", CategoryText, "Count words", text.CountWords),
		simple("count_lines", CategoryText, "Count lines", text.CountLines),
		simple("remove_whitespace", CategoryText, "Remove all whitespace", text.RemoveWhitespace),
		simple("trim_whitespace", CategoryText, "Trim leading and trailing whitespace", text.TrimWhitespace),
		simple("sort_lines", CategoryText, "Sort lines alphabetically", text.SortLines),
		simple("unique_lines", CategoryText, "Sort lines and remove duplicates", text.UniqueLines),

		// Crypto
		{
			Descriptor: Descriptor{
				Name:        "caesar_cipher",
				Category:    CategoryCrypto,
				Description: "Apply Caesar cipher",
				Parameters: []ParameterDescriptor{
					{
						Name:         "shift",
						Type:         TypeNumber,
						Description:  "Number of positions to shift",
						Required:     false,
						DefaultValue: Default("13"),
					},
				},
			},
			Handler: func(input string, params Params) (string, error) {
				return cipher.Caesar(input, params.Int("shift"))
			},
		},
		simple("rot13", CategoryCrypto, "Apply ROT13 cipher", cipher.ROT13),
		simple("atbash_cipher", CategoryCrypto, "Apply Atbash cipher", cipher.Atbash),

		// Data
		simple("json_prettify", CategoryData, "Format JSON with proper indentation", data.JSONPrettify),
		simple("json_minify", CategoryData, "Minify JSON by removing whitespace", data.JSONMinify),
		simple("json_validate", CategoryData, "Check that input is well-formed JSON", data.JSONValidate),
		simple("extract_urls", CategoryData, "Extract http and https URLs", data.ExtractURLs),
		simple("extract_emails", CategoryData, "Extract email addresses", data.ExtractEmails),
		simple("extract_ips", CategoryData, "Extract IPv4 addresses", data.ExtractIPs),
	}
}

func simple(name string, category Category, description string, fn func(string) (string, error)) Entry {
	return Entry{
		Descriptor: Descriptor{
			Name:        name,
			Category:    category,
			Description: description,
			Parameters:  []ParameterDescriptor{},
		},
		Handler: Transform(fn),
	}
}

// NewBuiltinRegistry creates a registry with the builtin catalog.
func NewBuiltinRegistry(config *BuiltinConfig, opts ...Option) (*Registry, error) {
	return NewRegistry(Builtins(config), opts...)
}
