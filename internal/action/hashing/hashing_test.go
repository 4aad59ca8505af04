package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigests(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) (string, error)
		input string
		want  string
	}{
		{"md5", MD5, "Hello, World!", "65a8e27d8879283831b664bd8b7f0ad4"},
		{"md5 empty", MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"sha1", SHA1, "Hello, World!", "0a0a9f2a6772942557ab5355d76af442f8f65e01"},
		{"sha1 empty", SHA1, "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"sha256", SHA256, "Hello, World!", "dffd6021bb2bd5b0af676290809ec3a53191dd81c7f70a4b28688a362182986f"},
		{"sha256 empty", SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha512", SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"crc32 check value", CRC32, "123456789", "cbf43926"},
		{"crc32", CRC32, "Hello, World!", "ec4ac3d0"},
		{"crc32 empty is zero padded", CRC32, "", "00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNTLMHash(t *testing.T) {
	// MD5 over UTF-16LE, not the MD4 digest real NTLM uses.
	got, err := NTLMHash("password")
	require.NoError(t, err)
	assert.Equal(t, "B081DBE85E1EC3FFC3D4E7D0227400CD", got)

	empty, err := NTLMHash("")
	require.NoError(t, err)
	assert.Equal(t, "D41D8CD98F00B204E9800998ECF8427E", empty)
}

func TestNTLMHashWith_MD4(t *testing.T) {
	got, err := NTLMHashWith("password", DigestMD4)
	require.NoError(t, err)
	assert.Equal(t, "8846F7EAEE8FB117AD06BDD830B7586C", got)

	empty, err := NTLMHashWith("", DigestMD4)
	require.NoError(t, err)
	assert.Equal(t, "31D6CFE0D16AE931B73C59D7E0C089C0", empty)
}

func TestParseDigest(t *testing.T) {
	tests := []struct {
		in      string
		want    Digest
		wantErr bool
	}{
		{in: "", want: DigestMD5},
		{in: "md5", want: DigestMD5},
		{in: "MD4", want: DigestMD4},
		{in: "des", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDigest(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLMHash(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "0000000000000000:0000000000000000"},
		{input: "a", want: "0000000d6e750b81:0000000000000000"},
		{input: "Hello", want: "0000000f5ad1bc32:0000000000000000"},
		// Only the first 14 bytes after uppercasing contribute.
		{input: "password123456789", want: "00000010fb962ec9:0000000e639dc3a7"},
		{input: "PASSWORD1234567", want: "00000010fb962ec9:0000000e639dc3a7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := LMHash(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLMHash_MultibyteInputDoesNotPanic(t *testing.T) {
	got, err := LMHash("ääääääääää")
	require.NoError(t, err)
	assert.Len(t, got, 33)
}
