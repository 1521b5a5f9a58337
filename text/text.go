// Package text has small string helpers shared by the config and command
// layers.
package text

import (
	"fmt"
	"strconv"
	"strings"
)

// Str converts a decoded YAML scalar (or anything else) to a string. nil
// becomes the empty string.
func Str(any interface{}) string {
	if any == nil {
		return ""
	}
	switch t := any.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

func FirstNotEmpty(choices ...string) string {
	for _, val := range choices {
		if val != "" {
			return val
		}
	}
	return ""
}

// ParseInt parses the integer from the text; in case of error,
// returns the default value.
func ParseInt(text string, defval int) int {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return defval
	}
	return int(v)
}

// ParseBool parses a yes/no style value. ok is false if text is not one.
func ParseBool(text string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
