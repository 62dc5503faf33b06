package candid

// Record is a keyed wire value with typed field accessors. Accessors return
// zero values for missing or differently-typed fields; callers that need to
// distinguish absence should index the map directly.
type Record map[string]any

// AsRecord converts a decoded value to a Record.
func AsRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	default:
		return nil, false
	}
}

func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Num returns a numeric field as float64. Decoded trees hold float64 after
// Normalize; locally built records may hold native ints.
func (r Record) Num(key string) float64 {
	switch t := r[key].(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func (r Record) Int(key string) int64 {
	return int64(r.Num(key))
}

func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

func (r Record) List(key string) []any {
	l, _ := r[key].([]any)
	return l
}

func (r Record) Rec(key string) Record {
	rec, _ := AsRecord(r[key])
	return rec
}

// Strs returns a field holding an array of strings, skipping non-string
// elements.
func (r Record) Strs(key string) []string {
	l := r.List(key)
	out := make([]string, 0, len(l))
	for _, e := range l {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Variant returns the tag of a variant-shaped field. Plain string fields are
// returned as-is so canisters may use either encoding for enums.
func (r Record) Variant(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	name, _ := VariantName(r[key])
	return name
}
