package stringnorm

import (
	"golang.org/x/text/unicode/norm"
)

// UnicodeNFC rewrites text to Unicode normalization form C, so that
// precomposed and combining-mark spellings of the same name compare equal.
type UnicodeNFC struct{}

func (UnicodeNFC) Normalize(text string) (string, error) {
	return norm.NFC.String(text), nil
}

func (UnicodeNFC) String() string {
	return "unicode NFC"
}
