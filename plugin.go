// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "context"

// Plugin is the capability every registered plugin must have: a stable
// name used in diagnostics and per-endpoint [Endpoint.Config] lookups.
// Everything else is optional; implement the PrepareSessioner,
// PreparePathier, etc. interfaces below for the stages a plugin needs.
type Plugin interface {
	Name() string
}

// ServiceClientAssigner runs exactly once, when the plugin is registered
// with a [Client] (via [WithPlugins] or [Client.AddPlugins]), before any
// call runs. A plugin that needs to reach the client later (e.g. to read
// its [Config]) should store the reference itself; re-registering the
// same plugin instance on a second client is not supported.
type ServiceClientAssigner interface {
	Plugin
	AssignServiceClient(client *Client)
}

// PrepareSessioner runs once per call, before any other hook, with the
// chance to decorate the [SessionWrapper]'s transport (see
// [SessionWrapper.Decorate]).
type PrepareSessioner interface {
	Plugin
	PrepareSession(ctx context.Context, session *SessionWrapper, params *RequestParams) error
}

// PreparePathier resolves placeholders in the endpoint path. It is a
// strict left-fold: each plugin sees the previous plugin's resolved path.
type PreparePathier interface {
	Plugin
	PreparePath(ctx context.Context, path string, params *RequestParams) (string, error)
}

// PrepareRequestParamser mutates headers, query parameters, and other
// request metadata before the payload is serialized.
type PrepareRequestParamser interface {
	Plugin
	PrepareRequestParams(ctx context.Context, params *RequestParams) error
}

// PreparePayloader serializes or transforms the request payload. It is a
// strict left-fold over [RequestParams.Payload].
type PreparePayloader interface {
	Plugin
	PreparePayload(ctx context.Context, payload any, params *RequestParams) (any, error)
}

// BeforeRequester runs immediately before the transport round trip, once
// [RequestParams.Body] has been set. It is the last chance to decorate
// the session (Timeout installs its deadline guard here) or to block the
// call (Pool/RateLimit admission).
type BeforeRequester interface {
	Plugin
	BeforeRequest(ctx context.Context, session *SessionWrapper, params *RequestParams) error
}

// PrepareResponser runs as soon as status and headers are available, via
// [FirePrepareResponse], before the body is read.
type PrepareResponser interface {
	Plugin
	PrepareResponse(ctx context.Context, response *ResponseWrapper) error
}

// OnResponser runs once the transport call returns, before the body is
// read.
type OnResponser interface {
	Plugin
	OnResponse(ctx context.Context, response *ResponseWrapper) error
}

// OnReader runs exactly once, after the full response body has been
// read (available via [ResponseWrapper.Raw]) and before the [Parser]
// runs.
type OnReader interface {
	Plugin
	OnRead(ctx context.Context, response *ResponseWrapper) error
}

// OnParsedResponser runs once the [Parser] has produced a parsed value
// from the fully-read body.
type OnParsedResponser interface {
	Plugin
	OnParsedResponse(ctx context.Context, response *ResponseWrapper, parsed any) error
}

// OnExceptioner runs when any stage up through the transport call fails.
// A plugin may observe the error, release resources it acquired earlier
// in the call, or wrap it: the returned error becomes the one fed to the
// next plugin and ultimately to the [Client.Call] caller. Returning nil
// keeps the current error unchanged; a plugin cannot suppress the
// failure outright.
type OnExceptioner interface {
	Plugin
	OnException(ctx context.Context, session *SessionWrapper, params *RequestParams, err error) error
}

// OnParseExceptioner runs when the [Parser] (or an on_parsed_response
// hook) fails. Like OnExceptioner, it may observe or wrap the error but
// not suppress it.
type OnParseExceptioner interface {
	Plugin
	OnParseException(ctx context.Context, response *ResponseWrapper, err error) error
}

// Closer runs when the owning [Client] is closed, in reverse
// registration order. Errors are collected, not short-circuited, so
// every plugin gets a chance to release its resources.
type Closer interface {
	Plugin
	Close(ctx context.Context) error
}
