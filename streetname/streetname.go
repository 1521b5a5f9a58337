// Package streetname canonicalizes free-text street names from
// crowd-sourced address tags.
//
// Names go through two ordered substitution tables. The contraction table
// folds verbose or irregular spellings ("Avenue", "Ave.", "Avene") into one
// abbreviation ("Ave"); the expansion table then expands abbreviations to
// the canonical full word ("Ave" -> "Avenue"). Contracting first means a
// full word is never expanded a second time ("Avenue" -> "Avenueenue").
package streetname

import (
	"github.com/osmwrangle/osmjson/stringnorm"
	"github.com/pkg/errors"
)

// Tables are the ordered substitution pairs, each a [from, to] pair.
type Tables struct {
	Contractions [][]string
	Expansions   [][]string
}

// Options tune how the tables are matched.
type Options struct {
	// WordBoundaries restricts matches to whole words. The default literal
	// substring matching is kept for compatibility with existing output.
	WordBoundaries bool

	// UnicodeNFC normalizes names to NFC before the tables run.
	UnicodeNFC bool

	// CacheSize bounds the memo of already normalized names; 0 disables it.
	CacheSize int
}

// A Normalizer applies the contraction and expansion passes.
type Normalizer struct {
	Contractions stringnorm.List
	Expansions   stringnorm.List

	norm stringnorm.Normalizer
}

// New builds a Normalizer from t. Pairs with an empty "from" side are
// rejected: they would match everywhere.
func New(t Tables, opt Options) (*Normalizer, error) {
	if err := validate("contractions", t.Contractions); err != nil {
		return nil, err
	}
	if err := validate("expansions", t.Expansions); err != nil {
		return nil, err
	}

	parse := stringnorm.ParseSubstringReplacers
	if opt.WordBoundaries {
		parse = stringnorm.ParseWordReplacers
	}
	n := &Normalizer{
		Contractions: parse(t.Contractions),
		Expansions:   parse(t.Expansions),
	}
	var nfc stringnorm.Normalizer
	if opt.UnicodeNFC {
		nfc = stringnorm.UnicodeNFC{}
	}
	n.norm = stringnorm.NewCached(
		stringnorm.Combine(nfc, n.Contractions, n.Expansions), opt.CacheSize)
	return n, nil
}

func validate(table string, pairs [][]string) error {
	for i, pair := range pairs {
		if len(pair) != 2 {
			return errors.Errorf("street name %s[%d]: expected [from, to], got %q", table, i, pair)
		}
		if pair[0] == "" {
			return errors.Errorf("street name %s[%d]: empty pattern", table, i)
		}
	}
	return nil
}

// Normalize returns the canonical form of name, or name unchanged when no
// table entry matches.
func (n *Normalizer) Normalize(name string) string {
	return stringnorm.NormalizeNoErr(n.norm, name)
}

// Chain exposes the full normalizer chain, including any NFC step and cache.
func (n *Normalizer) Chain() stringnorm.Normalizer {
	return n.norm
}
