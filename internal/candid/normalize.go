package candid

import "math/big"

// Normalize walks a decoded value tree and converts every wire integer
// (*big.Int) to a host float64, leaving structure and all other leaves
// untouched. Values above 2^53 lose precision; remote responses are
// tree-shaped by construction so the walk always terminates.
func Normalize(v any) any {
	switch t := v.(type) {
	case *big.Int:
		if t.IsInt64() {
			return float64(t.Int64())
		}
		f, _ := new(big.Float).SetInt(t).Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	default:
		return v
	}
}
