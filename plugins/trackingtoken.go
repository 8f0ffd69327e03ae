// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// TrackingTokenKey is the [svcclient.RequestParams]/[svcclient.ResponseWrapper]
// attribute key the token is stored under.
const TrackingTokenKey = "tracking_token"

// DefaultTrackingTokenLength is the random suffix length used when
// [TrackingToken.Length] is zero.
const DefaultTrackingTokenLength = 10

// TrackingToken stamps every outgoing request with a fresh, unique
// Prefix+random-suffix token, so that logs and downstream services can
// correlate one logical call across the request and response sides.
type TrackingToken struct {
	// Prefix is prepended to every generated token. Overridable per call
	// via [svcclient.WithTrackingTokenPrefix].
	Prefix string

	// Length is the random suffix length. Defaults to
	// [DefaultTrackingTokenLength] when zero.
	Length int

	// RandomToken generates an n-character random suffix. Defaults to
	// [svcclient.DefaultRandomToken] (upper-case letters and digits).
	RandomToken func(n int) string

	// Header, if non-empty, additionally stamps the token onto this
	// request header.
	Header string
}

var (
	_ svcclient.PrepareSessioner = (*TrackingToken)(nil)
	_ svcclient.OnResponser      = (*TrackingToken)(nil)
)

// NewTrackingToken creates a TrackingToken plugin with the given prefix.
func NewTrackingToken(prefix string) *TrackingToken {
	return &TrackingToken{Prefix: prefix}
}

// Name implements [svcclient.Plugin].
func (*TrackingToken) Name() string { return "tracking_token" }

// PrepareSession implements [svcclient.PrepareSessioner]. It composes
// the token, stamps it on the session (so a decorator installed by a
// later plugin, e.g. Timeout, can read it) and on the call's params (so
// OnResponse can copy it onto the response). A caller-supplied
// "tracking_token" param is consumed and used in place of the random
// suffix; the prefix is still prepended, so a pinned token correlates
// e.g. a retry with its first attempt.
func (t *TrackingToken) PrepareSession(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	prefix := t.Prefix
	if v, ok := params.Get(svcclient.TrackingTokenPrefixParamKey); ok {
		if s, ok := v.(string); ok {
			prefix = s
		}
		params.Delete(svcclient.TrackingTokenPrefixParamKey)
	}

	suffix := ""
	if v, ok := params.Get(svcclient.TrackingTokenParamKey); ok {
		if s, ok := v.(string); ok {
			suffix = s
		}
		params.Delete(svcclient.TrackingTokenParamKey)
	}
	if suffix == "" {
		length := t.Length
		if length <= 0 {
			length = DefaultTrackingTokenLength
		}
		randomToken := t.RandomToken
		if randomToken == nil {
			randomToken = svcclient.DefaultRandomToken
		}
		suffix = randomToken(length)
	}

	token := prefix + suffix
	session.Set(TrackingTokenKey, token)
	params.Set(TrackingTokenKey, token)
	if t.Header != "" {
		params.SetHeader(t.Header, token)
	}
	return nil
}

// OnResponse implements [svcclient.OnResponser]: copies the token
// generated at prepare_session onto the response.
func (t *TrackingToken) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	v, ok := response.Get(svcclient.RequestParamsKey)
	if !ok {
		return nil
	}
	params, ok := v.(*svcclient.RequestParams)
	if !ok {
		return nil
	}
	if token, ok := params.Get(TrackingTokenKey); ok {
		response.Set(TrackingTokenKey, token)
	}
	return nil
}
