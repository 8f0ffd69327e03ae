// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "time"

// ElapsedConfig independently toggles the Elapsed plugin's three timers.
// A nil pointer field means "use the plugin default" (enabled).
type ElapsedConfig struct {
	Headers *bool
	Read    *bool
	Parse   *bool
}

// LoggerConfig controls body elision for the InnerLogger/OuterLogger
// plugins.
type LoggerConfig struct {
	HiddenRequestBody  bool
	HiddenResponseBody bool
}

// MockConfig selects the mock implementation an endpoint falls back to
// when no mock registry entry matches.
type MockConfig struct {
	Type   string
	Params map[string]any
}

// Endpoint declares one named operation: an HTTP method, a path template
// (with "{token}" placeholders resolved by the PathTokens plugin), and
// per-endpoint defaults for the bundled plugins.
//
// [Client.Call] takes a shallow copy of the declared Endpoint before
// running any hook (see [Endpoint.Clone]), so a plugin splicing a patch
// into, say, Mock never mutates the [Spec]'s shared declaration.
type Endpoint struct {
	Name   string
	Method string
	Path   string

	// StreamRequest, if true, means the payload passes to the transport
	// untouched: no [Serializer] runs even when Payload is non-nil.
	StreamRequest bool

	// StreamResponse, if true, means the body is never read or parsed;
	// Call returns the raw response as soon as on_response completes.
	StreamResponse bool

	// Headers are default request headers, case-insensitively merged
	// under the caller's own headers by the Headers plugin.
	Headers map[string][]string

	// QueryParams are default query parameters, merged under the
	// caller's own query parameters by the QueryParams plugin.
	QueryParams map[string][]string

	// Timeout overrides the Timeout plugin's constructor default for
	// this endpoint. A nil pointer means "no endpoint-level override";
	// a pointer to 0 disables the timeout outright.
	Timeout *time.Duration

	// PathTokens are default substitution values for Path's "{token}"
	// placeholders, merged under the caller-supplied path params by the
	// PathTokens plugin.
	PathTokens map[string]string

	// Elapsed independently enables/disables the Elapsed plugin's three
	// timers for this endpoint.
	Elapsed *ElapsedConfig

	// Logger controls body elision for the logging plugins.
	Logger *LoggerConfig

	// Mock selects the default mock implementation used when no
	// registry entry matches a call to this endpoint.
	Mock *MockConfig

	// Config carries per-endpoint overrides keyed by plugin name, merged
	// over the [Spec]'s Config with this endpoint's values winning, for
	// any bundled or third-party plugin that needs a bit of
	// endpoint-specific configuration not named above. A plugin looks up
	// its own key; an absent key means "use the spec default, if any".
	Config map[string]any
}

// NormalizedMethod returns Method upper-cased, defaulting to "GET" when
// Method is empty.
func (e *Endpoint) NormalizedMethod() string {
	m := e.Method
	if m == "" {
		m = "GET"
	}
	return toUpperASCII(m)
}

// Clone returns a shallow copy of e, safe for one call's plugins to
// mutate (e.g. PatchMock splicing into Mock) without affecting the
// [Spec]'s shared declaration or concurrent calls to the same endpoint.
// Map/slice-typed fields are copied one level deep; their contained
// values are not deep-copied.
func (e *Endpoint) Clone() *Endpoint {
	out := *e
	out.Headers = cloneStringSliceMap(e.Headers)
	out.QueryParams = cloneStringSliceMap(e.QueryParams)
	out.PathTokens = cloneStringMap(e.PathTokens)
	out.Config = cloneAnyMap(e.Config)
	if e.Timeout != nil {
		t := *e.Timeout
		out.Timeout = &t
	}
	if e.Elapsed != nil {
		ec := *e.Elapsed
		out.Elapsed = &ec
	}
	if e.Logger != nil {
		lc := *e.Logger
		out.Logger = &lc
	}
	if e.Mock != nil {
		mc := *e.Mock
		mc.Params = cloneAnyMap(e.Mock.Params)
		out.Mock = &mc
	}
	return &out
}

func cloneStringSliceMap(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
