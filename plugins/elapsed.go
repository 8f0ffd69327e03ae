// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"time"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// Elapsed [svcclient.ResponseWrapper] attribute keys.
const (
	StartHeadersKey   = "start_headers"
	HeadersElapsedKey = "headers_elapsed"
	StartReadKey      = "start_read"
	ReadElapsedKey    = "read_elapsed"
	StartParseKey     = "start_parse"
	ParseElapsedKey   = "parse_elapsed"
)

const elapsedT0Key = "elapsed_t0"

// Elapsed records wall-clock durations for three independently-togglable
// timers: time to headers, time to read the body, and time to parse it.
// Each is enabled unless the endpoint's Elapsed sub-config or the
// matching "<kind>_elapsed" call option disables it.
type Elapsed struct {
	Now func() time.Time
}

var (
	_ svcclient.PrepareSessioner  = (*Elapsed)(nil)
	_ svcclient.PrepareResponser  = (*Elapsed)(nil)
	_ svcclient.OnResponser       = (*Elapsed)(nil)
	_ svcclient.OnReader          = (*Elapsed)(nil)
	_ svcclient.OnParsedResponser = (*Elapsed)(nil)
)

// NewElapsed creates an Elapsed plugin. now defaults to time.Now.
func NewElapsed(now func() time.Time) *Elapsed {
	if now == nil {
		now = time.Now
	}
	return &Elapsed{Now: now}
}

// Name implements [svcclient.Plugin].
func (*Elapsed) Name() string { return "elapsed" }

// PrepareSession implements [svcclient.PrepareSessioner]. It captures t0
// immediately before the transport call, the baseline every timer below
// measures against.
func (e *Elapsed) PrepareSession(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	params.Set(elapsedT0Key, e.Now())
	return nil
}

// PrepareResponse implements [svcclient.PrepareResponser]: records
// start_headers/headers_elapsed as soon as status/headers are available.
func (e *Elapsed) PrepareResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	params := e.params(response)
	if !e.enabled(params, svcclient.HeadersElapsedParamKey, func(c *svcclient.ElapsedConfig) *bool { return c.Headers }) {
		return nil
	}
	t0, ok := e.t0(params)
	if !ok {
		return nil
	}
	now := e.Now()
	response.Set(StartHeadersKey, now)
	response.Set(HeadersElapsedKey, now.Sub(t0))
	return nil
}

// OnResponse implements [svcclient.OnResponser]: records start_read.
func (e *Elapsed) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	params := e.params(response)
	if !e.enabled(params, svcclient.ReadElapsedParamKey, func(c *svcclient.ElapsedConfig) *bool { return c.Read }) {
		return nil
	}
	response.Set(StartReadKey, e.Now())
	return nil
}

// OnRead implements [svcclient.OnReader]: records read_elapsed from
// start_read, and stamps start_parse, so the transition from reading to
// parsing has its own baseline.
func (e *Elapsed) OnRead(ctx context.Context, response *svcclient.ResponseWrapper) error {
	params := e.params(response)
	if e.enabled(params, svcclient.ReadElapsedParamKey, func(c *svcclient.ElapsedConfig) *bool { return c.Read }) {
		if start, ok := response.Get(StartReadKey); ok {
			if t0, ok := start.(time.Time); ok {
				response.Set(ReadElapsedKey, e.Now().Sub(t0))
			}
		}
	}
	if e.enabled(params, svcclient.ParseElapsedParamKey, func(c *svcclient.ElapsedConfig) *bool { return c.Parse }) {
		response.Set(StartParseKey, e.Now())
	}
	return nil
}

// OnParsedResponse implements [svcclient.OnParsedResponser]: records
// parse_elapsed.
func (e *Elapsed) OnParsedResponse(ctx context.Context, response *svcclient.ResponseWrapper, parsed any) error {
	params := e.params(response)
	if !e.enabled(params, svcclient.ParseElapsedParamKey, func(c *svcclient.ElapsedConfig) *bool { return c.Parse }) {
		return nil
	}
	start, ok := response.Get(StartParseKey)
	if !ok {
		return nil
	}
	t0, ok := start.(time.Time)
	if !ok {
		return nil
	}
	response.Set(ParseElapsedKey, e.Now().Sub(t0))
	return nil
}

func (e *Elapsed) params(response *svcclient.ResponseWrapper) *svcclient.RequestParams {
	v, ok := response.Get(svcclient.RequestParamsKey)
	if !ok {
		return nil
	}
	params, _ := v.(*svcclient.RequestParams)
	return params
}

func (e *Elapsed) t0(params *svcclient.RequestParams) (time.Time, bool) {
	if params == nil {
		return time.Time{}, false
	}
	v, ok := params.Get(elapsedT0Key)
	if !ok {
		return time.Time{}, false
	}
	t0, ok := v.(time.Time)
	return t0, ok
}

// enabled resolves a timer's on/off state: the call's own "<kind>_elapsed"
// attribute wins if set, else the endpoint's Elapsed sub-config, else
// enabled by default.
func (e *Elapsed) enabled(params *svcclient.RequestParams, paramKey string, pick func(*svcclient.ElapsedConfig) *bool) bool {
	if params != nil {
		if v, ok := params.Get(paramKey); ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		if params.EndpointDesc != nil && params.EndpointDesc.Elapsed != nil {
			if b := pick(params.EndpointDesc.Elapsed); b != nil {
				return *b
			}
		}
	}
	return true
}
