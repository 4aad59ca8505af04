package data

import (
	"regexp"
	"strings"
)

var (
	// URLs end at any Unicode space, not only ASCII whitespace.
	urlPattern   = regexp.MustCompile(`https?://[^\s\p{Z}\x{85}]+`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	ipPattern    = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
)

// Sentinel outputs returned when an extraction finds nothing.
const (
	NoURLsFound   = "No URLs found"
	NoEmailsFound = "No email addresses found"
	NoIPsFound    = "No IP addresses found"
)

// ExtractURLs returns every http or https URL in input, one per line.
func ExtractURLs(input string) (string, error) {
	return extract(urlPattern, input, NoURLsFound), nil
}

// ExtractEmails returns every email address in input, one per line.
func ExtractEmails(input string) (string, error) {
	return extract(emailPattern, input, NoEmailsFound), nil
}

// ExtractIPs returns every dotted-quad in input, one per line. Octets are
// not range checked.
func ExtractIPs(input string) (string, error) {
	return extract(ipPattern, input, NoIPsFound), nil
}

func extract(re *regexp.Regexp, input, none string) string {
	matches := re.FindAllString(input, -1)
	if len(matches) == 0 {
		return none
	}
	return strings.Join(matches, "\n")
}
