// Package validator checks and cleans input that enters the message store
// through the import paths.
package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation errors
var (
	ErrInvalidAddress   = errors.New("invalid address format")
	ErrInvalidBox       = errors.New("invalid message box")
	ErrInvalidID        = errors.New("invalid message id")
	ErrInputTooLong     = errors.New("input exceeds maximum length")
	ErrInvalidCharacter = errors.New("input contains invalid characters")
	ErrEmptyInput       = errors.New("input cannot be empty")
)

// MaxAddressLength matches the address column size.
const MaxAddressLength = 255

var (
	// Dialable numbers, optionally international, with service codes
	phoneRegex = regexp.MustCompile(`^\+?[0-9*#]{1,32}$`)

	// Alphanumeric sender IDs are limited to 11 characters by GSM 03.40
	senderIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]{0,10}$`)

	// Visual separators people type in phone numbers
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

// ValidateAddress accepts a phone number, an alphanumeric sender ID or an
// email address, the forms an SMS or MMS peer can take.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)

	if address == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(address) > MaxAddressLength {
		return ErrInputTooLong
	}

	if strings.Contains(address, "@") {
		if _, err := mail.ParseAddress(address); err != nil {
			return ErrInvalidAddress
		}
		return nil
	}

	if phoneRegex.MatchString(phoneSeparators.Replace(address)) || senderIDRegex.MatchString(address) {
		return nil
	}
	return ErrInvalidAddress
}

// ValidateSmsBox checks an SMS folder code: inbox (1) through queued (6).
func ValidateSmsBox(box int) error {
	if box < 1 || box > 6 {
		return ErrInvalidBox
	}
	return nil
}

// ValidateMmsBox checks an MMS box code: inbox (1) through outbox (4).
func ValidateMmsBox(box int) error {
	if box < 1 || box > 4 {
		return ErrInvalidBox
	}
	return nil
}

// ValidateMessageID checks a row id taken from user input.
func ValidateMessageID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

// SanitizeFilename removes dangerous characters from filename.
// Prevents path traversal and removes control characters.
func SanitizeFilename(filename string) string {
	// Remove path separators to prevent path traversal
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")

	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = stripControl(filename, false)
	filename = strings.TrimSpace(filename)

	// Limit length to 255 characters (common filesystem limit)
	filename = truncateRunes(filename, 255)

	if filename == "" {
		return "unnamed"
	}
	return filename
}

// SanitizeString removes control characters, trims whitespace and enforces
// maxLength runes when it is positive.
func SanitizeString(input string, maxLength int) string {
	input = strings.TrimSpace(stripControl(input, false))
	return truncateRunes(input, maxLength)
}

// SanitizeText is SanitizeString for message bodies: line breaks and tabs
// are kept and surrounding whitespace is not trimmed.
func SanitizeText(input string, maxLength int) string {
	return truncateRunes(stripControl(input, true), maxLength)
}

// stripControl drops ASCII control characters (0-31 and 127).
func stripControl(s string, keepLayout bool) string {
	return strings.Map(func(r rune) rune {
		if keepLayout && (r == '\n' || r == '\r' || r == '\t') {
			return r
		}
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, n int) string {
	if n > 0 && utf8.RuneCountInString(s) > n {
		return string([]rune(s)[:n])
	}
	return s
}
