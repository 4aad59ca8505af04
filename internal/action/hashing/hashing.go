// Package hashing provides digest and checksum transforms rendered as hex text.
//
// NTLMHash and LMHash reproduce a simplified legacy scheme rather than the
// Windows algorithms: NTLM digests the UTF-16LE input with MD5 instead of MD4
// unless DigestMD4 is selected, and LM replaces the DES step with a
// multiplicative rolling hash. Outputs are kept stable for existing callers.
package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"strings"

	"golang.org/x/crypto/md4"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// Digest selects the hash function behind NTLMHash.
type Digest string

const (
	// DigestMD5 is the simplified digest kept for output compatibility.
	DigestMD5 Digest = "md5"
	// DigestMD4 is the digest used by the real NTLM algorithm.
	DigestMD4 Digest = "md4"
)

// ParseDigest validates a configured digest name. Empty selects DigestMD5.
func ParseDigest(name string) (Digest, error) {
	switch Digest(strings.ToLower(name)) {
	case "", DigestMD5:
		return DigestMD5, nil
	case DigestMD4:
		return DigestMD4, nil
	default:
		return "", fmt.Errorf("unsupported NTLM digest %q (want md5 or md4)", name)
	}
}

// MD5 returns the lowercase hex MD5 digest of input.
func MD5(input string) (string, error) {
	return sum(md5.New(), []byte(input)), nil
}

// SHA1 returns the lowercase hex SHA-1 digest of input.
func SHA1(input string) (string, error) {
	return sum(sha1.New(), []byte(input)), nil
}

// SHA256 returns the lowercase hex SHA-256 digest of input.
func SHA256(input string) (string, error) {
	return sum(sha256.New(), []byte(input)), nil
}

// SHA512 returns the lowercase hex SHA-512 digest of input.
func SHA512(input string) (string, error) {
	return sum(sha512.New(), []byte(input)), nil
}

// CRC32 returns the IEEE CRC-32 checksum of input as 8 lowercase hex digits.
func CRC32(input string) (string, error) {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(input))), nil
}

// NTLMHash returns NTLMHashWith(input, DigestMD5).
func NTLMHash(input string) (string, error) {
	return NTLMHashWith(input, DigestMD5)
}

// NTLMHashWith digests the UTF-16LE encoding of input and renders it as
// uppercase hex.
func NTLMHashWith(input string, digest Digest) (string, error) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(input)
	if err != nil {
		return "", &OperationError{
			Operation: "ntlm_hash",
			Message:   "failed to encode input as UTF-16LE",
			ErrorType: ErrorTypeInternal,
			Cause:     err,
		}
	}

	var h hash.Hash
	switch digest {
	case DigestMD4:
		h = md4.New()
	default:
		h = md5.New()
	}
	return strings.ToUpper(sum(h, []byte(utf16le))), nil
}

// LMHash uppercases input, truncates or NUL-pads it to 14 bytes, and hashes
// each 7-byte half with h = h*31 + b (mod 2^64). Output is "%016x:%016x".
func LMHash(input string) (string, error) {
	var block [14]byte
	copy(block[:], cases.Upper(language.Und).String(input))

	return fmt.Sprintf("%016x:%016x", rollingHash(block[:7]), rollingHash(block[7:])), nil
}

func rollingHash(b []byte) uint64 {
	var h uint64
	for _, c := range b {
		h = h*31 + uint64(c)
	}
	return h
}

func sum(h hash.Hash, b []byte) string {
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
