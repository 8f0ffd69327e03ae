// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"fmt"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// DefaultMaxBodyLength is used when [BaseLogger.MaxBodyLength] is zero.
const DefaultMaxBodyLength = 2048

// BaseLogger holds the logging configuration shared by [InnerLogger] and
// [OuterLogger].
type BaseLogger struct {
	Sink                  svcclient.LogSink
	OnExceptionLevel      svcclient.LogLevel
	OnParseExceptionLevel svcclient.LogLevel
	MaxBodyLength         int
}

func newBaseLogger(sink svcclient.LogSink) BaseLogger {
	if sink == nil {
		sink = svcclient.DiscardLogSink()
	}
	return BaseLogger{
		Sink:                  sink,
		OnExceptionLevel:      svcclient.LevelError,
		OnParseExceptionLevel: svcclient.LevelError,
		MaxBodyLength:         DefaultMaxBodyLength,
	}
}

func (b *BaseLogger) onException(ctx context.Context, params *svcclient.RequestParams, err error) error {
	b.Sink.Log(ctx, b.OnExceptionLevel, "request failed", map[string]any{
		"endpoint": params.Endpoint,
		"method":   params.Method,
		"path":     params.Path,
		"error":    err.Error(),
	})
	return err
}

func (b *BaseLogger) onParseException(ctx context.Context, response *svcclient.ResponseWrapper, err error) error {
	b.Sink.Log(ctx, b.OnParseExceptionLevel, "response parse failed", map[string]any{
		"endpoint":    response.Endpoint,
		"status_code": response.StatusCode,
		"error":       err.Error(),
	})
	return err
}

// renderRequestBody applies the hidden_request_body/stream_request/
// truncation elision rules to a request body.
func (b *BaseLogger) renderRequestBody(ep *svcclient.Endpoint, value any) string {
	hidden := ep != nil && ep.Logger != nil && ep.Logger.HiddenRequestBody
	stream := ep != nil && ep.StreamRequest
	return b.render(value, hidden, stream)
}

// renderResponseBody applies the hidden_response_body/stream_response/
// truncation elision rules to a response body.
func (b *BaseLogger) renderResponseBody(ep *svcclient.Endpoint, value any) string {
	hidden := ep != nil && ep.Logger != nil && ep.Logger.HiddenResponseBody
	stream := ep != nil && ep.StreamResponse
	return b.render(value, hidden, stream)
}

func (b *BaseLogger) render(value any, hidden, stream bool) string {
	if hidden {
		return "<HIDDEN>"
	}
	if stream {
		return "<STREAM>"
	}
	s := bodyToString(value)
	maxLen := b.MaxBodyLength
	if maxLen <= 0 {
		maxLen = DefaultMaxBodyLength
	}
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

func bodyToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func endpointOf(params *svcclient.RequestParams) *svcclient.Endpoint {
	if params == nil {
		return nil
	}
	return params.EndpointDesc
}

func paramsOf(response *svcclient.ResponseWrapper) *svcclient.RequestParams {
	v, ok := response.Get(svcclient.RequestParamsKey)
	if !ok {
		return nil
	}
	p, _ := v.(*svcclient.RequestParams)
	return p
}

// wrapperData is the snapshot interface shared by [svcclient.SessionWrapper],
// [svcclient.RequestParams], and [svcclient.ResponseWrapper].
type wrapperData interface {
	WrapperData() map[string]any
}

// foldWrapperData copies w's non-callable added attributes (tracking
// token, elapsed timings, admission wait durations) into fields,
// overwriting on collision.
func foldWrapperData(fields map[string]any, w wrapperData) map[string]any {
	if w == nil {
		return fields
	}
	for k, v := range w.WrapperData() {
		if k == svcclient.RequestParamsKey {
			continue
		}
		fields[k] = v
	}
	return fields
}

// InnerLogger logs the request right before the transport call and the
// response as soon as it comes back, both at wire level: headers, status
// code, and the serialized body, not the decoded payload.
type InnerLogger struct {
	BaseLogger
}

var (
	_ svcclient.BeforeRequester    = (*InnerLogger)(nil)
	_ svcclient.OnResponser        = (*InnerLogger)(nil)
	_ svcclient.OnExceptioner      = (*InnerLogger)(nil)
	_ svcclient.OnParseExceptioner = (*InnerLogger)(nil)
)

// NewInnerLogger creates an InnerLogger writing to sink.
func NewInnerLogger(sink svcclient.LogSink) *InnerLogger {
	return &InnerLogger{BaseLogger: newBaseLogger(sink)}
}

// Name implements [svcclient.Plugin].
func (*InnerLogger) Name() string { return "inner_logger" }

// BeforeRequest implements [svcclient.BeforeRequester].
func (l *InnerLogger) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	fields := map[string]any{
		"endpoint": params.Endpoint,
		"method":   params.Method,
		"path":     params.Path,
		"headers":  params.Headers,
		"body":     l.renderRequestBody(endpointOf(params), params.Body),
	}
	if session != nil {
		foldWrapperData(fields, session)
	}
	l.Sink.Log(ctx, svcclient.LevelDebug, "sending request", fields)
	return nil
}

// OnResponse implements [svcclient.OnResponser]. For a non-streamed,
// non-hidden endpoint it reads the response body here via
// [svcclient.ResponseWrapper.Text]; the pipeline's Reading stage then
// reuses the cached bytes, so the body is consumed only once.
func (l *InnerLogger) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	ep := endpointOf(paramsOf(response))
	hidden := ep != nil && ep.Logger != nil && ep.Logger.HiddenResponseBody
	stream := ep != nil && ep.StreamResponse

	var body any
	if !hidden && !stream {
		text, err := response.Text()
		if err != nil {
			return err
		}
		body = text
	}

	fields := map[string]any{
		"endpoint":    response.Endpoint,
		"status_code": response.StatusCode,
		"headers":     response.Headers,
		"body":        l.render(body, hidden, stream),
	}
	foldWrapperData(fields, response)
	l.Sink.Log(ctx, svcclient.LevelDebug, "received response", fields)
	return nil
}

// OnException implements [svcclient.OnExceptioner].
func (l *InnerLogger) OnException(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams, err error) error {
	return l.onException(ctx, params, err)
}

// OnParseException implements [svcclient.OnParseExceptioner].
func (l *InnerLogger) OnParseException(ctx context.Context, response *svcclient.ResponseWrapper, err error) error {
	return l.onParseException(ctx, response, err)
}

// OuterLogger logs the request as the caller sees it (pre-serialized
// payload) and the response once fully parsed.
type OuterLogger struct {
	BaseLogger
}

var (
	_ svcclient.PreparePayloader   = (*OuterLogger)(nil)
	_ svcclient.OnParsedResponser  = (*OuterLogger)(nil)
	_ svcclient.OnExceptioner      = (*OuterLogger)(nil)
	_ svcclient.OnParseExceptioner = (*OuterLogger)(nil)
)

// NewOuterLogger creates an OuterLogger writing to sink.
func NewOuterLogger(sink svcclient.LogSink) *OuterLogger {
	return &OuterLogger{BaseLogger: newBaseLogger(sink)}
}

// Name implements [svcclient.Plugin].
func (*OuterLogger) Name() string { return "outer_logger" }

// PreparePayload implements [svcclient.PreparePayloader]. It observes the
// payload before serialization and passes it through unchanged.
func (l *OuterLogger) PreparePayload(ctx context.Context, payload any, params *svcclient.RequestParams) (any, error) {
	l.Sink.Log(ctx, svcclient.LevelInfo, "request prepared", map[string]any{
		"endpoint": params.Endpoint,
		"method":   params.Method,
		"path":     params.Path,
		"query":    params.Query,
		"payload":  l.renderRequestBody(endpointOf(params), payload),
	})
	return payload, nil
}

// OnParsedResponse implements [svcclient.OnParsedResponser].
func (l *OuterLogger) OnParsedResponse(ctx context.Context, response *svcclient.ResponseWrapper, parsed any) error {
	fields := map[string]any{
		"endpoint":    response.Endpoint,
		"status_code": response.StatusCode,
		"parsed":      l.renderResponseBody(endpointOf(paramsOf(response)), parsed),
	}
	foldWrapperData(fields, response)
	l.Sink.Log(ctx, svcclient.LevelInfo, "response parsed", fields)
	return nil
}

// OnException implements [svcclient.OnExceptioner].
func (l *OuterLogger) OnException(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams, err error) error {
	return l.onException(ctx, params, err)
}

// OnParseException implements [svcclient.OnParseExceptioner].
func (l *OuterLogger) OnParseException(ctx context.Context, response *svcclient.ResponseWrapper, err error) error {
	return l.onParseException(ctx, response, err)
}
