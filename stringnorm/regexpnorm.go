package stringnorm

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A RegexpNormalizer replaces every match of Regexp with Replacement,
// taken literally: "$1" in Replacement is not expanded.
type RegexpNormalizer struct {
	Regexp      *regexp.Regexp
	Replacement string
}

func (r *RegexpNormalizer) Normalize(text string) (string, error) {
	return r.Regexp.ReplaceAllLiteralString(text, r.Replacement), nil
}

func (r *RegexpNormalizer) String() string {
	return "/" + r.Regexp.String() + "/ -> " + strconv.Quote(r.Replacement)
}

// WordReplacer returns a literal replacer for before that only matches where
// before is not glued to adjacent word characters: a side of before that
// starts or ends with a letter, digit or underscore must sit on a word
// boundary. "St" then no longer matches inside "Stone", while "I " still
// matches in "I 35".
func WordReplacer(before, after string) *RegexpNormalizer {
	expr := regexp.QuoteMeta(before)
	if first, _ := utf8.DecodeRuneInString(before); isWordRune(first) {
		expr = `\b` + expr
	}
	if last, _ := utf8.DecodeLastRuneInString(before); isWordRune(last) {
		expr = expr + `\b`
	}
	return &RegexpNormalizer{Regexp: regexp.MustCompile(expr), Replacement: after}
}

// ParseWordReplacers is ParseSubstringReplacers with word-boundary matching.
func ParseWordReplacers(pairs [][]string) List {
	res := make(List, len(pairs))
	for i, pair := range pairs {
		res[i] = WordReplacer(pair[0], pair[1])
	}
	return res
}

// isWordRune matches the ASCII word class used by regexp's \b.
func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}
