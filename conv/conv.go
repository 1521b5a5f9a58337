// Package conv converts generic values decoded from YAML into typed Go
// values.
package conv

import (
	"github.com/osmwrangle/osmjson/text"
	"github.com/pkg/errors"
)

// IStringPairs converts islice into a [][]string, where each element is a
// 2-pair []string. Elements of islice that are not two-element lists are
// rejected with an error naming their index.
func IStringPairs(islice interface{}) ([][]string, error) {
	if islice == nil {
		return nil, nil
	}
	slice, ok := islice.([]interface{})
	if !ok {
		return nil, errors.Errorf("expected a list of pairs, got %#v", islice)
	}
	res := make([][]string, 0, len(slice))
	for i, thing := range slice {
		pair, ok := thing.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, errors.Errorf("pair %d: expected [from, to], got %#v", i, thing)
		}
		res = append(res, []string{text.Str(pair[0]), text.Str(pair[1])})
	}
	return res, nil
}
