// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import (
	"net/url"
	"regexp"
	"strconv"
)

var tokenPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*|[0-9]*)\}`)

// PartialFormat substitutes "{token}" placeholders in template using
// params. A placeholder whose name is not a key of params is left in the
// output verbatim, so callers can compose tokens across multiple plugins
// (e.g. PathTokens resolves path-only tokens, leaving others for the next
// stage) rather than requiring every token to be known up front.
//
// Substituted values are form-encoded ([url.QueryEscape], which already
// encodes space as "+") before substitution. substituted and
// notSubstituted report, in first-occurrence order, which placeholder
// names were resolved and which were left untouched.
func PartialFormat(template string, params map[string]string) (result string, substituted, notSubstituted []string) {
	return PartialFormatArgs(template, nil, params)
}

// PartialFormatArgs is [PartialFormat] with positional fields: "{0}"
// substitutes args[0], and a bare "{}" consumes the next positional
// argument in sequence. A positional field beyond len(args) is left
// verbatim, like an unknown name. Positional fields are reported in
// substituted/notSubstituted under their decimal index.
func PartialFormatArgs(template string, args []string, params map[string]string) (result string, substituted, notSubstituted []string) {
	seenSub := map[string]bool{}
	seenNot := map[string]bool{}
	record := func(name string, ok bool) {
		if ok && !seenSub[name] {
			seenSub[name] = true
			substituted = append(substituted, name)
		}
		if !ok && !seenNot[name] {
			seenNot[name] = true
			notSubstituted = append(notSubstituted, name)
		}
	}

	auto := 0
	result = tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]

		idx, positional := -1, false
		switch {
		case name == "":
			idx, positional = auto, true
			auto++
			name = strconv.Itoa(idx)
		case name[0] >= '0' && name[0] <= '9':
			n, err := strconv.Atoi(name)
			if err != nil {
				record(name, false)
				return match
			}
			idx, positional = n, true
		}

		if positional {
			if idx < len(args) {
				record(name, true)
				return url.QueryEscape(args[idx])
			}
			record(name, false)
			return match
		}

		if v, ok := params[name]; ok {
			record(name, true)
			return url.QueryEscape(v)
		}
		record(name, false)
		return match
	})
	return result, substituted, notSubstituted
}

// ExtractTokens returns the distinct named "{token}" placeholders
// referenced in template, in first-occurrence order.
func ExtractTokens(template string) []string {
	matches := tokenPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		name := m[1]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
