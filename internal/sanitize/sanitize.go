// Package sanitize removes non-finite numbers from response payloads.
// JSON has no representation for NaN or Infinity, so any such value must
// become an explicit null before serialization.
package sanitize

import "math"

// Finite returns a pointer to f, or nil when f is NaN or infinite.
// It is the per-leaf rule applied to every numeric field of a report bar.
func Finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Scrub walks an arbitrarily nested structure of slices, string-keyed maps
// and scalars, replacing every non-finite float leaf with nil. All other
// leaves pass through unchanged.
func Scrub(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Scrub(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Scrub(item)
		}
		return out
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return val
	case *float64:
		if val == nil {
			return val
		}
		if math.IsNaN(*val) || math.IsInf(*val, 0) {
			return (*float64)(nil)
		}
		return val
	default:
		return v
	}
}
