// Package text provides case, ordering, counting and whitespace transforms.
package text

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToUppercase applies full Unicode uppercase mapping ("ß" becomes "SS").
func ToUppercase(input string) (string, error) {
	// Casers are stateful; one per call.
	return cases.Upper(language.Und).String(input), nil
}

// ToLowercase applies full Unicode lowercase mapping.
func ToLowercase(input string) (string, error) {
	return cases.Lower(language.Und).String(input), nil
}

// Reverse reverses input by code point.
func Reverse(input string) (string, error) {
	runes := []rune(input)
	slices.Reverse(runes)
	return string(runes), nil
}

// ReverseWords splits on whitespace and joins the words in reverse order
// with single spaces.
func ReverseWords(input string) (string, error) {
	words := strings.Fields(input)
	slices.Reverse(words)
	return strings.Join(words, " "), nil
}

// CountCharacters reports code points and bytes.
func CountCharacters(input string) (string, error) {
	return fmt.Sprintf("Characters: %d, Bytes: %d", utf8.RuneCountInString(input), len(input)), nil
}

// CountWords reports the number of whitespace-separated words.
func CountWords(input string) (string, error) {
	return fmt.Sprintf("Words: %d", len(strings.Fields(input))), nil
}

// CountLines reports the number of lines. A trailing newline does not start
// another line, and empty input has none.
func CountLines(input string) (string, error) {
	return fmt.Sprintf("Lines: %d", len(splitLines(input))), nil
}

// RemoveWhitespace drops every Unicode whitespace character.
func RemoveWhitespace(input string) (string, error) {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input), nil
}

// TrimWhitespace removes leading and trailing whitespace.
func TrimWhitespace(input string) (string, error) {
	return strings.TrimSpace(input), nil
}

// SortLines sorts lines byte-wise and joins them with "\n".
func SortLines(input string) (string, error) {
	lines := splitLines(input)
	slices.Sort(lines)
	return strings.Join(lines, "\n"), nil
}

// UniqueLines sorts lines and drops adjacent duplicates.
func UniqueLines(input string) (string, error) {
	lines := splitLines(input)
	slices.Sort(lines)
	return strings.Join(slices.Compact(lines), "\n"), nil
}

// splitLines splits on "\n", strips one trailing "\r" per line and omits
// the empty segment after a final newline.
func splitLines(input string) []string {
	if input == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
