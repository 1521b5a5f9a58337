package streetname

import (
	"testing"

	"github.com/osmwrangle/osmjson/data"
)

func defaultTables(t *testing.T) Tables {
	names := data.Defaults().Sub("street-names")
	contractions, err := names.StringPairs("contractions")
	if err != nil {
		t.Fatalf("contractions: %s", err)
	}
	expansions, err := names.StringPairs("expansions")
	if err != nil {
		t.Fatalf("expansions: %s", err)
	}
	return Tables{Contractions: contractions, Expansions: expansions}
}

func newNormalizer(t *testing.T, opt Options) *Normalizer {
	n, err := New(defaultTables(t), opt)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return n
}

var normalizeTests = []struct {
	name     string
	expected string
}{
	{"Ave", "Avenue"},
	{"Avenue", "Avenue"},
	{"Ave.", "Avenue"},
	{"Avene", "Avenue"},
	{"Oak Dr.", "Oak Drive"},
	{"Drive", "Drive"},
	{"N Interstate 35", "North Interstate Highway 35"},
	{"W 5th St.", "West 5th Street"},
	{"Research Blvd.", "Research Boulevard"},
	{"Pkwy", "Parkway"},
	{"Ranch Road 620", "Ranch Road 620"},
	{"", ""},

	// Literal matching ignores word boundaries, and "E " expands without
	// its trailing space.
	{"Stone Street", "Streetone Street"},
	{"E 6th St", "East6th Street"},
}

func TestNormalize(t *testing.T) {
	for _, cached := range []int{0, 16} {
		n := newNormalizer(t, Options{CacheSize: cached})
		for _, test := range normalizeTests {
			if res := n.Normalize(test.name); res != test.expected {
				t.Errorf("Normalize(%#v) == %#v, expected %#v (cache %d)",
					test.name, res, test.expected, cached)
			}
		}
	}
}

func TestNormalizeCanonicalFixedPoints(t *testing.T) {
	n := newNormalizer(t, Options{})
	for _, canonical := range []string{
		"Avenue", "Drive", "Street", "Circle", "Lane", "Boulevard",
		"Court", "Cove", "Road", "Parkway",
	} {
		if res := n.Normalize(canonical); res != canonical {
			t.Errorf("Normalize(%#v) == %#v, expected it unchanged", canonical, res)
		}
	}
	for _, variant := range []string{"Ave", "Dr.", "St.", "Blvd", "Cir", "Ct", "Pkwy"} {
		once := n.Normalize(variant)
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%#v)) == %#v, expected %#v", variant, twice, once)
		}
	}
}

func TestNormalizeWordBoundaries(t *testing.T) {
	n := newNormalizer(t, Options{WordBoundaries: true})
	var tests = []struct {
		name     string
		expected string
	}{
		{"Stone Street", "Stone Street"},
		{"Stone St.", "Stone Street"},
		{"Avenue", "Avenue"},
		{"Dry Creek Dr", "Dry Creek Drive"},
		{"N Interstate 35", "North Interstate Highway 35"},
	}
	for _, test := range tests {
		if res := n.Normalize(test.name); res != test.expected {
			t.Errorf("Normalize(%#v) == %#v, expected %#v", test.name, res, test.expected)
		}
	}
}

func TestNormalizeUnicodeNFC(t *testing.T) {
	tables := Tables{Expansions: [][]string{{"Cam\u00ednito", "Caminito"}}}
	plain, err := New(tables, Options{})
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	nfc, err := New(tables, Options{UnicodeNFC: true})
	if err != nil {
		t.Fatalf("New: %s", err)
	}

	decomposed := "Cami\u0301nito Alto"
	if res := plain.Normalize(decomposed); res != decomposed {
		t.Errorf("without NFC, expected no match, got %#v", res)
	}
	if res := nfc.Normalize(decomposed); res != "Caminito Alto" {
		t.Errorf("with NFC, expected Caminito Alto, got %#v", res)
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	for _, tables := range []Tables{
		{Contractions: [][]string{{"", "Ave"}}},
		{Expansions: [][]string{{"Ave"}}},
	} {
		if _, err := New(tables, Options{}); err == nil {
			t.Errorf("expected error for %#v", tables)
		}
	}
}
