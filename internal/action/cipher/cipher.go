// Package cipher provides classical substitution ciphers over ASCII letters.
// Characters outside A-Z and a-z are copied through unchanged.
package cipher

import "strings"

// DefaultShift is the Caesar shift used when none is supplied.
const DefaultShift = 13

// Caesar rotates each ASCII letter by shift positions within its case.
// Negative shifts rotate backwards; the result is always a letter.
func Caesar(input string, shift int) (string, error) {
	// Euclidean remainder: always in [0, 26) regardless of the sign of shift.
	n := shift % 26
	if n < 0 {
		n += 26
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+rune(n))%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+rune(n))%26
		default:
			return r
		}
	}, input), nil
}

// ROT13 is Caesar with a shift of 13. It is its own inverse.
func ROT13(input string) (string, error) {
	return Caesar(input, 13)
}

// Atbash mirrors each ASCII letter within its case (a<->z, B<->Y).
func Atbash(input string) (string, error) {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'z' - (r - 'a')
		case r >= 'A' && r <= 'Z':
			return 'Z' - (r - 'A')
		default:
			return r
		}
	}, input), nil
}
