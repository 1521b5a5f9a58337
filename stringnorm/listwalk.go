package stringnorm

// NormList unpacks trees of normalizers into a simple List of atomic
// Normalizers, looking through Lists and Cached wrappers.
func NormList(norm Normalizer) List {
	res := List{}
	var traverse func(Normalizer)
	traverse = func(n Normalizer) {
		switch act := n.(type) {
		case List:
			for _, child := range act {
				traverse(child)
			}
		case *Cached:
			traverse(act.Normalizer)
		case nil:
		default:
			res = append(res, n)
		}
	}
	traverse(norm)
	return res
}
