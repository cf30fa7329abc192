package simplifier

// Prune removes vacuous containers from a decoded value tree. Objects are
// rebuilt key by key with each value pruned recursively; a key whose pruned
// value is nil, an empty map, or an empty slice is dropped. Slices are
// pruned element-wise without dropping elements, and every other value
// passes through unchanged.
//
// Prune is idempotent: Prune(Prune(x)) equals Prune(x).
func Prune(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			pruned := Prune(item)
			if isVacuous(pruned) {
				continue
			}
			out[k] = pruned
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Prune(item)
		}
		return out

	default:
		return v
	}
}

func isVacuous(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
