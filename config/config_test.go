package config

import (
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/osmwrangle/osmjson/qyaml"
	"github.com/osmwrangle/osmjson/resource"
	"github.com/osmwrangle/osmjson/root"
)

func mustParse(t *testing.T, text string) qyaml.YAML {
	y, err := qyaml.Parse([]byte(text))
	if err != nil {
		t.Fatalf("parse %q: %s", text, err)
	}
	return y
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %s", err)
	}
	if c.Pretty || c.PostcodePrefix != "78" || c.OnError != Abort || c.OverwriteReserved {
		t.Errorf("unexpected defaults %#v", c)
	}
	if c.ProgressEvery != 100000 || c.StreetNames.CacheSize != 4096 {
		t.Errorf("unexpected numeric defaults %#v", c)
	}
	if len(c.StreetNames.Contractions) != 8 || len(c.StreetNames.Expansions) != 38 {
		t.Errorf("default tables: %d contractions, %d expansions",
			len(c.StreetNames.Contractions), len(c.StreetNames.Expansions))
	}
	if c.StreetNames.WordBoundaries || c.StreetNames.UnicodeNFC {
		t.Errorf("boundary and NFC modes must be opt-in")
	}
}

func TestOverlayKeepsUnsetKeys(t *testing.T) {
	base, err := Default()
	if err != nil {
		t.Fatalf("Default: %s", err)
	}
	c, err := base.Overlay(mustParse(t, `postcode-prefix: "787"`), "austin.yml")
	if err != nil {
		t.Fatalf("Overlay: %s", err)
	}
	if c.PostcodePrefix != "787" {
		t.Errorf("PostcodePrefix == %#v", c.PostcodePrefix)
	}
	if !reflect.DeepEqual(c.StreetNames, base.StreetNames) {
		t.Errorf("street name settings should be unchanged")
	}
	if !reflect.DeepEqual(c.Sources, []string{"osmjson.yml (built-in)", "austin.yml"}) {
		t.Errorf("Sources == %#v", c.Sources)
	}
	if len(base.Sources) != 1 {
		t.Errorf("Overlay must not modify the receiver's Sources: %#v", base.Sources)
	}
}

func TestOverlayStreetNames(t *testing.T) {
	base, _ := Default()
	c, err := base.Overlay(mustParse(t, `
on-error: SKIP
pretty: true
street-names:
  word-boundaries: true
  cache-size: 0
  expansions:
    - ["Blvd", "Boulevard"]
`), "x.yml")
	if err != nil {
		t.Fatalf("Overlay: %s", err)
	}
	if c.OnError != Skip || !c.Pretty {
		t.Errorf("scalars not applied: %#v", c)
	}
	sn := c.StreetNames
	if !sn.WordBoundaries || sn.CacheSize != 0 {
		t.Errorf("street-names options not applied: %#v", sn.Options)
	}
	if !reflect.DeepEqual(sn.Expansions, [][]string{{"Blvd", "Boulevard"}}) {
		t.Errorf("expansions == %#v", sn.Expansions)
	}
	if len(sn.Contractions) != 8 {
		t.Errorf("contractions should keep the defaults")
	}

	norm, err := c.StreetNormalizer()
	if err != nil {
		t.Fatalf("StreetNormalizer: %s", err)
	}
	if res := norm.Normalize("Research Blvd"); res != "Research Boulevard" {
		t.Errorf("Normalize == %#v", res)
	}
}

func TestOverlayErrors(t *testing.T) {
	base, _ := Default()
	for _, text := range []string{
		`on-error: retry`,
		`postcodeprefix: "78"`,
		`street-names: {contraction: []}`,
		`street-names: {expansions: [["Ave"]]}`,
		`street-names: [1, 2]`,
		`progress-every: -1`,
		`- pretty`,
		`pretty: "maybe"`,
		`progress-every: "lots"`,
		`overwrite-reserved: 3`,
		`street-names: {word-boundaries: sometimes}`,
		`street-names: {cache-size: big}`,
	} {
		if _, err := base.Overlay(mustParse(t, text), "bad.yml"); err == nil {
			t.Errorf("expected error overlaying %q", text)
		} else if !strings.Contains(err.Error(), "bad.yml") {
			t.Errorf("error %q should name the source", err)
		}
	}
}

func TestOverlayRejectsUnparseableScalars(t *testing.T) {
	base, _ := Default()
	_, err := base.Overlay(mustParse(t, `pretty: "maybe"`), "austin.yml")
	if err == nil || !strings.Contains(err.Error(), `pretty: expected a boolean, got "maybe"`) {
		t.Errorf("Expected pretty error, got %v", err)
	}
	_, err = base.Overlay(mustParse(t, `progress-every: "lots"`), "austin.yml")
	if err == nil || !strings.Contains(err.Error(), `progress-every: expected an integer, got "lots"`) {
		t.Errorf("Expected progress-every error, got %v", err)
	}
	c, err := base.Overlay(mustParse(t, "pretty: \"on\"\nprogress-every: \"500\""), "austin.yml")
	if err != nil || !c.Pretty || c.ProgressEvery != 500 {
		t.Errorf("quoted scalars: Pretty == %v, ProgressEvery == %d, err == %v", c.Pretty, c.ProgressEvery, err)
	}
}

func TestParseErrorPolicy(t *testing.T) {
	if p, err := ParseErrorPolicy(" Abort "); err != nil || p != Abort {
		t.Errorf("ParseErrorPolicy(Abort) == %v, %v", p, err)
	}
	if _, err := ParseErrorPolicy("ignore"); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	saved := resource.Root
	resource.Root = root.Root(dir)
	defer func() { resource.Root = saved }()

	if err := ioutil.WriteFile(filepath.Join(dir, "houston.yml"), []byte("postcode-prefix: \"77\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load("houston.yml")
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if c.PostcodePrefix != "77" || c.Sources[1] != filepath.Join(dir, "houston.yml") {
		t.Errorf("Load == %#v", c)
	}

	if c, err := Load(""); err != nil || c.PostcodePrefix != "78" {
		t.Errorf("Load(\"\") == %#v, %v", c, err)
	}
	if _, err := Load("missing.yml"); err == nil {
		t.Errorf("expected error loading missing file")
	}

	shaper, err := c.Shaper()
	if err != nil {
		t.Fatalf("Shaper: %s", err)
	}
	if shaper.PostcodePrefix != "77" || shaper.Street == nil {
		t.Errorf("Shaper == %#v", shaper)
	}
}

func TestApplyOverrides(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %s", err)
	}
	pretty, prefix, policy := true, "", "Skip"
	got, err := c.Apply(Overrides{Pretty: &pretty, PostcodePrefix: &prefix, OnError: &policy})
	if err != nil {
		t.Fatalf("Apply: %s", err)
	}
	if !got.Pretty || got.PostcodePrefix != "" || got.OnError != Skip {
		t.Errorf("Apply == pretty=%v prefix=%q on-error=%s", got.Pretty, got.PostcodePrefix, got.OnError)
	}
	if got.OverwriteReserved != c.OverwriteReserved || got.StreetNames.WordBoundaries != c.StreetNames.WordBoundaries {
		t.Errorf("Apply changed settings without overrides")
	}
	if c.Pretty {
		t.Errorf("Apply modified its receiver")
	}

	bad := "ignore"
	if _, err := c.Apply(Overrides{OnError: &bad}); err == nil || !strings.Contains(err.Error(), "--on-error") {
		t.Errorf("Expected --on-error error, got %v", err)
	}
}
