// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcclient "github.com/alfred82santa/aio-service-client"
	"github.com/alfred82santa/aio-service-client/plugins"
	"github.com/alfred82santa/aio-service-client/svctest"
)

// paramsSpy captures the call's RequestParams at before_request so a
// test can inspect what was consumed and what was preserved.
type paramsSpy struct {
	params *svcclient.RequestParams
}

func (*paramsSpy) Name() string { return "params_spy" }
func (s *paramsSpy) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	s.params = params
	return nil
}

func TestLookupWithPathTokenAndExtraParam(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "lookup", Path: "/users/{id}", Method: "GET"})

	var gotReq *svcclient.TransportRequest
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			gotReq = req
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	spy := &paramsSpy{}
	client := svcclient.New(spec, transport,
		svcclient.WithBasePath("http://h/api"),
		svcclient.WithPlugins(plugins.NewPathTokens(nil), spy))

	_, err := client.Call(context.Background(), "lookup", nil,
		svcclient.WithPathParam("id", "42"),
		svcclient.WithExtra("extra", "x"))
	require.NoError(t, err)

	assert.Equal(t, "http://h/api/users/42", gotReq.URL)
	assert.Equal(t, "GET", gotReq.Method)
	assert.Nil(t, gotReq.Body)

	// "id" was consumed by the substitution; "extra" flows through.
	_, hasID := spy.params.PathParams["id"]
	assert.False(t, hasID)
	extra, ok := spy.params.Get("extra")
	require.True(t, ok)
	assert.Equal(t, "x", extra)
}

func TestLookupWithoutTokenLeavesTemplateLiteral(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "lookup", Path: "/users/{id}", Method: "GET"})

	var gotURL string
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			gotURL = req.URL
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	spy := &paramsSpy{}
	client := svcclient.New(spec, transport,
		svcclient.WithBasePath("http://h/api"),
		svcclient.WithPlugins(plugins.NewPathTokens(nil), spy))

	_, err := client.Call(context.Background(), "lookup", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://h/api/users/{id}", gotURL)
	assert.Empty(t, spy.params.PathParams)
}

func TestSendSerializesPayloadWithDefaultJSON(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "send", Path: "/e", Method: "POST"})

	var gotMethod, gotBody string
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			gotMethod = req.Method
			raw, _ := io.ReadAll(req.Body)
			gotBody = string(raw)
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	client := svcclient.New(spec, transport)
	_, err := client.Call(context.Background(), "send", map[string]any{"a": 1})
	require.NoError(t, err)

	assert.Equal(t, "POST", gotMethod)
	assert.JSONEq(t, `{"a":1}`, gotBody)
}

func TestGETNeverCarriesABody(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "fetch", Path: "/e", Method: "GET"})

	var gotBody io.Reader
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			gotBody = req.Body
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	client := svcclient.New(spec, transport)
	_, err := client.Call(context.Background(), "fetch", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Nil(t, gotBody)
}

func TestEndpointSugarBindsCall(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "ping", Path: "/ping", Method: "GET"})

	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, `"pong"`), nil
		},
	}

	client := svcclient.New(spec, transport)
	ping := client.Endpoint("ping")

	resp, err := ping(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Parsed())

	missing := client.Endpoint("missing")
	_, err = missing(context.Background(), nil)
	var specErr *svcclient.SpecError
	require.ErrorAs(t, err, &specErr)
}

// hookRecorder implements every lifecycle hook and appends each
// invocation to a shared trace.
type hookRecorder struct {
	name  string
	trace *[]string
}

func (h *hookRecorder) record(hook string) { *h.trace = append(*h.trace, h.name+":"+hook) }

func (h *hookRecorder) Name() string { return h.name }
func (h *hookRecorder) PrepareSession(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	h.record("prepare_session")
	return nil
}
func (h *hookRecorder) PreparePath(ctx context.Context, path string, params *svcclient.RequestParams) (string, error) {
	h.record("prepare_path")
	return path, nil
}
func (h *hookRecorder) PrepareRequestParams(ctx context.Context, params *svcclient.RequestParams) error {
	h.record("prepare_request_params")
	return nil
}
func (h *hookRecorder) PreparePayload(ctx context.Context, payload any, params *svcclient.RequestParams) (any, error) {
	h.record("prepare_payload")
	return payload, nil
}
func (h *hookRecorder) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	h.record("before_request")
	return nil
}
func (h *hookRecorder) PrepareResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	h.record("prepare_response")
	return nil
}
func (h *hookRecorder) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	h.record("on_response")
	return nil
}
func (h *hookRecorder) OnRead(ctx context.Context, response *svcclient.ResponseWrapper) error {
	h.record("on_read")
	return nil
}
func (h *hookRecorder) OnParsedResponse(ctx context.Context, response *svcclient.ResponseWrapper, parsed any) error {
	h.record("on_parsed_response")
	return nil
}

func TestHookOrderAcrossStagesAndPlugins(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "ping", Path: "/ping", Method: "GET"})

	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			resp := svctest.NewStatusResponse(200, "null")
			return resp, nil
		},
	}

	var trace []string
	first := &hookRecorder{name: "a", trace: &trace}
	second := &hookRecorder{name: "b", trace: &trace}

	client := svcclient.New(spec, transport, svcclient.WithPlugins(first, second))
	_, err := client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a:prepare_session", "b:prepare_session",
		"a:prepare_path", "b:prepare_path",
		"a:prepare_request_params", "b:prepare_request_params",
		"a:prepare_payload", "b:prepare_payload",
		"a:before_request", "b:before_request",
		"a:prepare_response", "b:prepare_response",
		"a:on_response", "b:on_response",
		"a:on_read", "b:on_read",
		"a:on_parsed_response", "b:on_parsed_response",
	}, trace)
}

// readSpy counts on_read firings and snapshots Raw() at each one.
type readSpy struct {
	fires int
	raw   []byte
}

func (*readSpy) Name() string { return "read_spy" }
func (s *readSpy) OnRead(ctx context.Context, response *svcclient.ResponseWrapper) error {
	s.fires++
	s.raw = response.Raw()
	return nil
}

func TestOnReadFiresOnceWithFullBody(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "big", Path: "/big", Method: "GET"})

	// A body much larger than any internal read buffer: on_read must
	// still fire exactly once, with the whole body already available.
	body := `"` + strings.Repeat("x", 256*1024) + `"`
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, body), nil
		},
	}

	spy := &readSpy{}
	client := svcclient.New(spec, transport, svcclient.WithPlugins(spy))

	resp, err := client.Call(context.Background(), "big", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, spy.fires)
	assert.Equal(t, body, string(spy.raw))
	assert.Equal(t, body, string(resp.Raw()))
}

// appendingPathPlugin appends its suffix to the path, so the final path
// proves the prepare_path chain is a left-fold in registration order.
type appendingPathPlugin struct {
	name   string
	suffix string
}

func (p *appendingPathPlugin) Name() string { return p.name }
func (p *appendingPathPlugin) PreparePath(ctx context.Context, path string, params *svcclient.RequestParams) (string, error) {
	return path + p.suffix, nil
}

func TestPreparePathIsALeftFold(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "ping", Path: "/base", Method: "GET"})

	var gotURL string
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			gotURL = req.URL
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	client := svcclient.New(spec, transport, svcclient.WithPlugins(
		&appendingPathPlugin{name: "one", suffix: "/one"},
		&appendingPathPlugin{name: "two", suffix: "/two"},
	))
	_, err := client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "/base/one/two", gotURL)
}
