package data

import (
	"reflect"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	names := Defaults().Sub("street-names")
	contractions, err := names.StringPairs("contractions")
	if err != nil {
		t.Fatalf("contractions: %s", err)
	}
	expected := [][]string{{"Avenue", "Ave"}, {"Ave.", "Ave"}, {"Avene", "Ave"}}
	if !reflect.DeepEqual(contractions[0:3], expected) {
		t.Errorf("Bad contractions: %v, expected it to start with: %v", contractions, expected)
	}

	expansions, err := names.StringPairs("expansions")
	if err != nil {
		t.Fatalf("expansions: %s", err)
	}
	if len(expansions) != 38 {
		t.Errorf("Expected 38 expansions, got %d", len(expansions))
	}
	if last := expansions[len(expansions)-1]; !reflect.DeepEqual(last, []string{"E. ", "East"}) {
		t.Errorf("Expected last expansion [\"E. \", \"East\"], got %#v", last)
	}
}

func TestDefaultScalars(t *testing.T) {
	d := Defaults()
	if prefix := d.String("postcode-prefix"); prefix != "78" {
		t.Errorf("postcode-prefix == %#v", prefix)
	}
	if pretty, err := d.Bool("pretty", true); err != nil || pretty {
		t.Errorf("pretty should default to false, got %v, %v", pretty, err)
	}
	if policy := d.String("on-error"); policy != "abort" {
		t.Errorf("on-error == %#v", policy)
	}
}
