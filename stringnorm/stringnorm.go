// Package stringnorm applies ordered chains of string rewrites.
package stringnorm

// A Normalizer rewrites a string. Text it has nothing to do with comes back
// unchanged. An error rejects the text; the returned string is then the
// input as far as it was rewritten.
type Normalizer interface {
	Normalize(text string) (string, error)
}

// A List applies its Normalizers in order, each one seeing the output of the
// one before.
type List []Normalizer

// Normalize runs text through every step of n, stopping at the first error.
func (n List) Normalize(text string) (string, error) {
	for _, step := range n {
		res, err := step.Normalize(text)
		if err != nil {
			return text, err
		}
		text = res
	}
	return text, nil
}

// Combine chains normalizers into one, skipping nils. A single survivor is
// returned as is.
func Combine(normalizers ...Normalizer) Normalizer {
	combined := make(List, 0, len(normalizers))
	for _, norm := range normalizers {
		if norm != nil {
			combined = append(combined, norm)
		}
	}
	if len(combined) == 1 {
		return combined[0]
	}
	return combined
}

// NormalizeNoErr applies normalizer to text, falling back to text itself if
// the normalizer rejects it.
func NormalizeNoErr(normalizer Normalizer, text string) string {
	res, err := normalizer.Normalize(text)
	if err != nil {
		return text
	}
	return res
}
