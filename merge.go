// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

// MergeHeaders layers case-insensitive header maps, lowest precedence
// first: a key present in a later layer replaces (not appends to) the
// same key from an earlier layer, regardless of case. The winning
// layer's own casing is preserved in the result.
func MergeHeaders(layers ...map[string][]string) map[string][]string {
	out := map[string][]string{}
	index := map[string]string{} // lower(key) -> canonical key used in out
	for _, layer := range layers {
		for k, v := range layer {
			lower := toLowerASCII(k)
			if canon, ok := index[lower]; ok {
				delete(out, canon)
			}
			index[lower] = k
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

// MergeQueryParams layers query-parameter maps, lowest precedence first.
// A key mapped to a nil slice in any layer marks it removed: it is
// dropped from the result unless a later (higher-precedence) layer
// re-adds it with a real value, so a call can cancel an endpoint or
// constructor default.
func MergeQueryParams(layers ...map[string][]string) map[string][]string {
	out := map[string][]string{}
	for _, layer := range layers {
		for k, v := range layer {
			if v == nil {
				delete(out, k)
				continue
			}
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
