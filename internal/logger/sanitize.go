package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length caps for logged values, in runes
const (
	MaxPathLength          = 500
	MaxErrorMessageLength  = 1000
	MaxGeneralStringLength = 2000
	MaxDebugContentLength  = 10000
)

// SanitizePath makes a URL path safe to log
func SanitizePath(path string) string {
	return SanitizeString(path, MaxPathLength)
}

// SanitizeString drops invalid UTF-8 and control characters (tab, newline
// and carriage return are kept) and truncates to maxLength runes.
// A non-positive maxLength means MaxGeneralStringLength.
func SanitizeString(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxGeneralStringLength
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
	if utf8.RuneCountInString(s) > maxLength {
		s = string([]rune(s)[:maxLength]) + "..."
	}
	return s
}

// SanitizeError makes an error message safe to log
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), MaxErrorMessageLength)
}

// SanitizeDebugContent makes user text or model output safe to log in debug mode
func SanitizeDebugContent(content string) string {
	return SanitizeString(content, MaxDebugContentLength)
}
