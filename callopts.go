// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "time"

// CallOption seeds one [RequestParams] field or attribute before
// [Client.Call] runs any hook.
type CallOption func(*RequestParams)

// WithPathParam supplies one "{name}" path-template substitution value,
// consumed by the PathTokens plugin.
func WithPathParam(name, value string) CallOption {
	return func(p *RequestParams) { p.PathParams[name] = value }
}

// WithPathParams supplies several path-template substitution values at
// once.
func WithPathParams(values map[string]string) CallOption {
	return func(p *RequestParams) {
		for k, v := range values {
			p.PathParams[k] = v
		}
	}
}

// WithHeader sets one outgoing request header, overriding any endpoint or
// constructor default of the same name (case-insensitively) per the
// Headers plugin's merge precedence.
func WithHeader(name, value string) CallOption {
	return func(p *RequestParams) { p.SetHeader(name, value) }
}

// WithQueryParam sets one outgoing query parameter, overriding any
// endpoint or constructor default of the same name per the QueryParams
// plugin's merge precedence.
func WithQueryParam(name, value string) CallOption {
	return func(p *RequestParams) { p.Query[name] = []string{value} }
}

// WithoutQueryParam marks name as explicitly removed: QueryParams will
// drop it from the outgoing request even if an endpoint or constructor
// default would otherwise supply it. The removal is modeled as a
// present key mapped to a nil slice.
func WithoutQueryParam(name string) CallOption {
	return func(p *RequestParams) { p.Query[name] = nil }
}

// WithTimeout overrides the Timeout plugin's resolved timeout for this
// one call. A zero duration disables the timeout.
func WithTimeout(d time.Duration) CallOption {
	return func(p *RequestParams) { p.Set(timeoutParamKey, d) }
}

// WithTrackingTokenPrefix overrides the TrackingToken plugin's configured
// prefix for this one call.
func WithTrackingTokenPrefix(prefix string) CallOption {
	return func(p *RequestParams) { p.Set(trackingTokenPrefixKey, prefix) }
}

// WithTrackingToken pins the TrackingToken plugin's suffix for this one
// call instead of a random one; the resolved prefix is still prepended.
func WithTrackingToken(token string) CallOption {
	return func(p *RequestParams) { p.Set(trackingTokenParamKey, token) }
}

// WithHeadersElapsed overrides whether the Elapsed plugin times the
// headers-received stage for this one call.
func WithHeadersElapsed(enabled bool) CallOption {
	return func(p *RequestParams) { p.Set(headersElapsedParamKey, enabled) }
}

// WithReadElapsed overrides whether the Elapsed plugin times the
// body-read stage for this one call.
func WithReadElapsed(enabled bool) CallOption {
	return func(p *RequestParams) { p.Set(readElapsedParamKey, enabled) }
}

// WithParseElapsed overrides whether the Elapsed plugin times the parse
// stage for this one call.
func WithParseElapsed(enabled bool) CallOption {
	return func(p *RequestParams) { p.Set(parseElapsedParamKey, enabled) }
}

// WithExtra stashes an arbitrary attribute on [RequestParams], reachable
// by plugins via params.Get(key). Any reserved key a bundled plugin
// already reads (see the plugins subpackage) should be set through its
// dedicated CallOption instead.
func WithExtra(key string, value any) CallOption {
	return func(p *RequestParams) { p.Set(key, value) }
}

// Reserved [RequestParams] attribute keys consumed by bundled plugins.
const (
	TimeoutParamKey             = "timeout"
	TrackingTokenParamKey       = "tracking_token"
	TrackingTokenPrefixParamKey = "tracking_token_prefix"
	HeadersElapsedParamKey      = "headers_elapsed"
	ReadElapsedParamKey         = "read_elapsed"
	ParseElapsedParamKey        = "parse_elapsed"
)

const (
	timeoutParamKey        = TimeoutParamKey
	trackingTokenParamKey  = TrackingTokenParamKey
	trackingTokenPrefixKey = TrackingTokenPrefixParamKey
	headersElapsedParamKey = HeadersElapsedParamKey
	readElapsedParamKey    = ReadElapsedParamKey
	parseElapsedParamKey   = ParseElapsedParamKey
)
