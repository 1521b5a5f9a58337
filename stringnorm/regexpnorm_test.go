package stringnorm

import (
	"regexp"
	"testing"
)

func TestRegexpNormalizerIsLiteral(t *testing.T) {
	norm := &RegexpNormalizer{Regexp: regexp.MustCompile(`\bCv\b`), Replacement: "$1 Cove"}
	if res := NormalizeNoErr(norm, "Oak Cv"); res != "Oak $1 Cove" {
		t.Errorf("Expected Oak $1 Cove, got %s", res)
	}
	if s := norm.String(); s != `/\bCv\b/ -> "$1 Cove"` {
		t.Errorf("String() == %s", s)
	}
}

var wordReplCases = []struct {
	before, after string
	input         string
	expected      string
}{
	{"St", "Street", "Stone St", "Stone Street"},
	{"St", "Street", "St Elmo Rd", "Street Elmo Rd"},
	{"Dr", "Drive", "Drive", "Drive"},
	{"St.", "St", "Main St. South", "Main St South"},
	{"St.", "St", "Main St.", "Main St"},
	{"I ", "Interstate Highway ", "I 35", "Interstate Highway 35"},
	{"I ", "Interstate Highway ", "Loop I 35", "Loop Interstate Highway 35"},
	{"I ", "Interstate Highway ", "HI 5", "HI 5"},
	{"Ave", "Avenue", "Avenue", "Avenue"},
	{"Cv", "$1 Cove", "Oak Cv", "Oak $1 Cove"},
}

func TestWordReplacer(t *testing.T) {
	for _, c := range wordReplCases {
		res := NormalizeNoErr(WordReplacer(c.before, c.after), c.input)
		if res != c.expected {
			t.Errorf("WordReplacer(%#v, %#v) on %#v == %#v, expected %#v",
				c.before, c.after, c.input, res, c.expected)
		}
	}
}
