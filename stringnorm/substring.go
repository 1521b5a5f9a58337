package stringnorm

import (
	"strconv"
	"strings"
)

// A SubstringReplacer replaces every occurrence of Before in the text with
// After. Matching is literal and ignores word boundaries, so "St" also
// matches inside "Stone".
type SubstringReplacer struct {
	Before, After string
}

// Normalize replaces all non-overlapping occurrences of s.Before, scanning
// left to right.
func (s *SubstringReplacer) Normalize(text string) (string, error) {
	if s.Before == "" {
		return text, nil
	}
	return strings.Replace(text, s.Before, s.After, -1), nil
}

func (s *SubstringReplacer) String() string {
	return strconv.Quote(s.Before) + " -> " + strconv.Quote(s.After)
}

// ParseSubstringReplacers accepts a slice of string pairs, and constructs a
// List normalizer of SubstringReplacers for each pair, with Before=pair[0]
// and After=pair[1]. The list preserves the order of pairs.
func ParseSubstringReplacers(pairs [][]string) List {
	replacers := make(List, len(pairs))
	for i, pair := range pairs {
		replacers[i] = &SubstringReplacer{
			Before: pair[0],
			After:  pair[1],
		}
	}
	return replacers
}
