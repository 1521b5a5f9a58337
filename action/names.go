package action

import (
	"fmt"
	"io"

	"github.com/osmwrangle/osmjson/config"
	"github.com/osmwrangle/osmjson/stringnorm"
)

// NormalizeNames writes each name and its normalized form, tab-separated.
func NormalizeNames(w io.Writer, c config.Config, names []string) error {
	norm, err := c.StreetNormalizer()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, norm.Normalize(name))
	}
	return nil
}

// PrintTables writes the street name substitutions of c in the order they
// are applied.
func PrintTables(w io.Writer, c config.Config) error {
	norm, err := c.StreetNormalizer()
	if err != nil {
		return err
	}
	if c.StreetNames.UnicodeNFC {
		fmt.Fprintln(w, stringnorm.UnicodeNFC{})
	}
	printList := func(name string, list stringnorm.List) {
		steps := stringnorm.NormList(list)
		fmt.Fprintf(w, "%s (%d):\n", name, len(steps))
		for i, step := range steps {
			fmt.Fprintf(w, "%3d. %s\n", i+1, step)
		}
	}
	printList("contractions", norm.Contractions)
	printList("expansions", norm.Expansions)
	return nil
}
