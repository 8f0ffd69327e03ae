// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/bassosimone/runtimex"
)

// Client is the entry point for invoking declared endpoints through the
// plugin pipeline. It is safe for concurrent use by multiple goroutines.
type Client struct {
	spec       *Spec
	transport  Transport
	plugins    []Plugin
	config     *Config
	serializer Serializer
	parser     Parser
	basePath   string

	closeOnce sync.Once
	closeErr  error
}

// Option configures a [Client] at construction time.
type Option func(*Client)

// WithPlugins registers plugins, in order. Hook stages visit plugins in
// this same order, except Close, which runs in reverse registration
// order so that a plugin closes after anything registered after it that
// might still depend on it.
func WithPlugins(plugins ...Plugin) Option {
	return func(c *Client) { c.plugins = append(c.plugins, plugins...) }
}

// WithConfig overrides the default [Config].
func WithConfig(cfg *Config) Option {
	return func(c *Client) { c.config = cfg }
}

// WithSerializer overrides the default [Serializer].
func WithSerializer(s Serializer) Option {
	return func(c *Client) { c.serializer = s }
}

// WithParser overrides the default [Parser].
func WithParser(p Parser) Option {
	return func(c *Client) { c.parser = p }
}

// WithBasePath sets the base URL every endpoint path is joined onto,
// e.g. "http://host/api". The join strips trailing slashes from the base
// and leading slashes from the endpoint path, so both spellings compose
// to a single separator.
func WithBasePath(base string) Option {
	return func(c *Client) { c.basePath = base }
}

// New creates a [Client] for spec, round-tripping calls through
// transport.
func New(spec *Spec, transport Transport, opts ...Option) *Client {
	runtimex.Assert(spec != nil)
	runtimex.Assert(transport != nil)
	c := &Client{
		spec:      spec,
		transport: transport,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.config = c.config.orDefaults()
	if c.serializer == nil {
		c.serializer = DefaultSerializer()
	}
	if c.parser == nil {
		c.parser = DefaultParser()
	}
	c.assignServiceClient(c.plugins)
	return c
}

// AddPlugins registers additional plugins after construction, in order,
// appended after any already registered. Each newly added
// [ServiceClientAssigner] plugin's AssignServiceClient hook fires
// immediately.
func (c *Client) AddPlugins(plugins ...Plugin) {
	c.plugins = append(c.plugins, plugins...)
	c.assignServiceClient(plugins)
}

func (c *Client) assignServiceClient(plugins []Plugin) {
	for _, p := range plugins {
		if a, ok := p.(ServiceClientAssigner); ok {
			a.AssignServiceClient(c)
		}
	}
}

// Call invokes the named endpoint, driving payload through the full
// plugin pipeline:
//
//	prepare_session -> prepare_path -> prepare_request_params ->
//	prepare_payload -> before_request -> transport.Do ->
//	prepare_response -> on_response -> on_read -> on_parsed_response
//
// On failure up through the transport call, on_exception hooks observe
// (and may wrap) the error before it propagates. On parse failure,
// on_parse_exception hooks do the same; exactly one of the two chains
// runs for any failing call.
func (c *Client) Call(ctx context.Context, endpoint string, payload any, opts ...CallOption) (*ResponseWrapper, error) {
	log := c.config.Logger
	log.Info("call start", "endpoint", endpoint)

	specEp, err := c.spec.Lookup(endpoint)
	if err != nil {
		return nil, err
	}

	// Shallow-copy the declared endpoint, echo its name back onto the
	// copy, and resolve the method default/upper-casing.
	ep := specEp.Clone()
	ep.Name = endpoint
	ep.Method = ep.NormalizedMethod()

	params := NewRequestParams(endpoint, ep.Method, joinURL(c.basePath, ep.Path))
	params.EndpointDesc = ep
	params.Payload = payload
	for _, opt := range opts {
		opt(params)
	}

	session := NewSessionWrapper(c.transport)

	response, err := c.run(ctx, ep, session, params)
	if err != nil {
		// Parse-stage failures already went through on_parse_exception
		// inside run; everything else routes through on_exception. At
		// most one of the two hook chains fires per call.
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			err = c.fireOnException(ctx, session, params, err)
		}
	}
	if err != nil {
		log.Info("call failed", "endpoint", endpoint, "err_class", c.config.ErrClassifier.Classify(err))
		return nil, err
	}
	log.Info("call done", "endpoint", endpoint)
	return response, nil
}

func (c *Client) run(ctx context.Context, ep *Endpoint, session *SessionWrapper, params *RequestParams) (*ResponseWrapper, error) {
	if err := c.firePrepareSession(ctx, session, params); err != nil {
		return nil, err
	}

	path, err := c.firePreparePath(ctx, params.Path, params)
	if err != nil {
		return nil, err
	}
	params.Path = path

	if err := c.firePrepareRequestParams(ctx, params); err != nil {
		return nil, err
	}

	payload, err := c.firePreparePayload(ctx, params.Payload, params)
	if err != nil {
		return nil, err
	}
	params.Payload = payload

	// Encoding: a body is only encoded for methods that carry one and a
	// non-nil payload. A stream_request endpoint passes the payload
	// through untouched; the serializer never runs.
	if params.Payload != nil && !methodHasNoBody(ep.Method) {
		if ep.StreamRequest {
			raw, ok := params.Payload.([]byte)
			if !ok {
				return nil, &PluginError{Hook: "prepare_payload", Plugin: "stream_request", Err: errStreamRequestNotBytes}
			}
			params.Body = raw
		} else {
			sctx := &SerializeContext{Session: session, EndpointDesc: ep, RequestParams: params}
			body, err := c.serializer.Serialize(params.Payload, sctx)
			if err != nil {
				return nil, &PluginError{Hook: "prepare_payload", Plugin: "serializer", Err: err}
			}
			params.Body = body
		}
	}

	if err := c.fireBeforeRequest(ctx, session, params); err != nil {
		return nil, err
	}

	req := buildTransportRequest(params)

	response := &ResponseWrapper{Endpoint: ep.Name}
	response.Set(RequestParamsKey, params)
	var prepareOnce sync.Once
	prepareErr := error(nil)
	fire := func(ctx context.Context, r *ResponseWrapper) error {
		prepareOnce.Do(func() {
			prepareErr = c.firePrepareResponse(ctx, r)
		})
		return prepareErr
	}
	ctx = withPrepareResponseFunc(ctx, fire)

	tr, err := session.Do(ctx, req)
	if err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Err: err}
	}

	response.StatusCode = tr.StatusCode
	response.Headers = tr.Headers
	response.body = tr.Body

	if err := fire(ctx, response); err != nil {
		return nil, err
	}

	if err := c.fireOnResponse(ctx, response); err != nil {
		return nil, err
	}

	// For a stream_response endpoint the body is never read or parsed;
	// read, on_read, the parser, on_parsed_response, and
	// on_parse_exception are all skipped.
	if ep.StreamResponse {
		return response, nil
	}

	raw, err := response.Read()
	if err != nil {
		return nil, &TransportError{Endpoint: ep.Name, Err: err}
	}
	if err := c.fireOnRead(ctx, response); err != nil {
		return nil, err
	}

	pctx := &ParseContext{Session: session, EndpointDesc: ep, Response: response}
	parsed, parseErr := c.parser.Parse(raw, pctx)
	if parseErr != nil {
		wrapped := &ParseError{Endpoint: ep.Name, Response: response, Err: parseErr}
		return nil, c.fireOnParseException(ctx, response, wrapped)
	}
	response.parsed = parsed

	// An on_parsed_response hook failing is still a parse-stage failure.
	if err := c.fireOnParsedResponse(ctx, response, parsed); err != nil {
		wrapped := &ParseError{Endpoint: ep.Name, Response: response, Err: err}
		return nil, c.fireOnParseException(ctx, response, wrapped)
	}

	return response, nil
}

// joinURL joins the client base path and an endpoint path template,
// stripping trailing slashes from the base and leading slashes from the
// endpoint path so either spelling composes to one separator.
func joinURL(base, path string) string {
	if base == "" {
		return path
	}
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

var errStreamRequestNotBytes = fmt.Errorf("svcclient: stream_request endpoint requires a []byte payload")

// methodHasNoBody reports whether method is one of the verbs the
// Encoding stage never attaches a body to. method must already be
// upper-cased.
func methodHasNoBody(method string) bool {
	return method == "GET" || method == "DELETE"
}

func buildTransportRequest(params *RequestParams) *TransportRequest {
	path := params.Path
	if len(params.Query) > 0 {
		keys := make([]string, 0, len(params.Query))
		for k := range params.Query {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		q := url.Values{}
		for _, k := range keys {
			for _, v := range params.Query[k] {
				q.Add(k, v)
			}
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path = path + sep + q.Encode()
	}

	var body io.Reader
	if len(params.Body) > 0 {
		body = bytes.NewReader(params.Body)
	}

	return &TransportRequest{
		Method:  params.Method,
		URL:     path,
		Headers: params.Headers,
		Body:    body,
	}
}

// ServiceName returns the name identifying this client in log records
// and mock-registry selectors (see [Config.ServiceName]).
func (c *Client) ServiceName() string {
	return c.config.ServiceName
}

// EndpointFunc is a bound call target returned by [Client.Endpoint].
type EndpointFunc func(ctx context.Context, payload any, opts ...CallOption) (*ResponseWrapper, error)

// Endpoint returns a callable bound to the named endpoint, so call sites
// can read like direct method invocation:
//
//	lookup := client.Endpoint("lookup")
//	resp, err := lookup(ctx, nil, svcclient.WithPathParam("id", "42"))
//
// The name is not validated here; an undeclared endpoint surfaces as a
// [*SpecError] when the returned function runs, same as [Client.Call].
func (c *Client) Endpoint(name string) EndpointFunc {
	return func(ctx context.Context, payload any, opts ...CallOption) (*ResponseWrapper, error) {
		return c.Call(ctx, name, payload, opts...)
	}
}

// Close runs Close on every [Closer] plugin, in reverse registration
// order, then closes the transport. All errors are collected; Close is
// idempotent and safe to call multiple times or concurrently.
func (c *Client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		var errs []error
		for i := len(c.plugins) - 1; i >= 0; i-- {
			if p, ok := c.plugins[i].(Closer); ok {
				if err := p.Close(ctx); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				}
			}
		}
		if err := c.transport.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			c.closeErr = fmt.Errorf("svcclient: close: %w", joinErrors(errs))
		}
	})
	return c.closeErr
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
