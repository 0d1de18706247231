package util

import "strings"

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

func ContainsAllStrings(s []string, required []string) bool {
	for _, r := range required {
		if !ContainsString(s, r) {
			return false
		}
	}

	return true
}

// IsDigits reports whether s is a non-empty run of ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func NormaliseHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripChars removes every occurrence of the characters in cutset from s
func StripChars(s string, cutset string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(cutset, r) {
			return -1
		}
		return r
	}, s)
}
