// SPDX-License-Identifier: GPL-3.0-or-later

package plugins_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcclient "github.com/alfred82santa/aio-service-client"
	"github.com/alfred82santa/aio-service-client/plugins"
	"github.com/alfred82santa/aio-service-client/svctest"
)

// capturingSink records every LogSink record it receives.
type capturingSink struct {
	records []sinkRecord
}

type sinkRecord struct {
	level  svcclient.LogLevel
	msg    string
	fields map[string]any
}

func (s *capturingSink) Log(ctx context.Context, level svcclient.LogLevel, msg string, fields map[string]any) {
	s.records = append(s.records, sinkRecord{level: level, msg: msg, fields: fields})
}

func (s *capturingSink) find(t *testing.T, msg string) sinkRecord {
	t.Helper()
	for _, r := range s.records {
		if r.msg == msg {
			return r
		}
	}
	t.Fatalf("no %q record captured", msg)
	return sinkRecord{}
}

func okTransport(body string) *svctest.FuncTransport {
	return &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, body), nil
		},
	}
}

func postSpec(logger *svcclient.LoggerConfig) *svcclient.Spec {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "send", Method: "POST", Path: "/e", Logger: logger})
	return spec
}

func TestInnerLoggerEmitsRequestAndResponseRecords(t *testing.T) {
	sink := &capturingSink{}
	client := svcclient.New(postSpec(nil), okTransport(`{"ok":true}`),
		svcclient.WithPlugins(plugins.NewInnerLogger(sink)))

	_, err := client.Call(context.Background(), "send", map[string]any{"a": 1})
	require.NoError(t, err)

	sent := sink.find(t, "sending request")
	assert.Equal(t, svcclient.LevelDebug, sent.level)
	assert.Equal(t, "send", sent.fields["endpoint"])
	assert.Equal(t, "POST", sent.fields["method"])
	assert.JSONEq(t, `{"a":1}`, sent.fields["body"].(string))

	received := sink.find(t, "received response")
	assert.Equal(t, 200, received.fields["status_code"])
	assert.JSONEq(t, `{"ok":true}`, received.fields["body"].(string))
}

func TestInnerLoggerFoldsSessionWrapperData(t *testing.T) {
	sink := &capturingSink{}
	client := svcclient.New(postSpec(nil), okTransport("null"),
		svcclient.WithPlugins(
			plugins.NewTrackingToken("t-"),
			plugins.NewInnerLogger(sink)))

	_, err := client.Call(context.Background(), "send", nil)
	require.NoError(t, err)

	sent := sink.find(t, "sending request")
	token, ok := sent.fields["tracking_token"].(string)
	require.True(t, ok, "the session's tracking token should be folded into the record")
	assert.True(t, strings.HasPrefix(token, "t-"))
}

func TestOuterLoggerShowsPayloadAndParsedBody(t *testing.T) {
	sink := &capturingSink{}
	client := svcclient.New(postSpec(nil), okTransport(`{"answer":42}`),
		svcclient.WithPlugins(plugins.NewOuterLogger(sink)))

	_, err := client.Call(context.Background(), "send", map[string]any{"q": "life"})
	require.NoError(t, err)

	prepared := sink.find(t, "request prepared")
	assert.Equal(t, svcclient.LevelInfo, prepared.level)
	assert.Contains(t, prepared.fields["payload"].(string), "life")

	parsed := sink.find(t, "response parsed")
	assert.Contains(t, parsed.fields["parsed"].(string), "42")
}

func TestLoggerHiddenBodyElision(t *testing.T) {
	sink := &capturingSink{}
	client := svcclient.New(
		postSpec(&svcclient.LoggerConfig{HiddenRequestBody: true, HiddenResponseBody: true}),
		okTransport(`{"secret":"s3cr3t"}`),
		svcclient.WithPlugins(plugins.NewInnerLogger(sink), plugins.NewOuterLogger(sink)))

	_, err := client.Call(context.Background(), "send", map[string]any{"password": "hunter2"})
	require.NoError(t, err)

	assert.Equal(t, "<HIDDEN>", sink.find(t, "sending request").fields["body"])
	assert.Equal(t, "<HIDDEN>", sink.find(t, "request prepared").fields["payload"])
	assert.Equal(t, "<HIDDEN>", sink.find(t, "received response").fields["body"])
	assert.Equal(t, "<HIDDEN>", sink.find(t, "response parsed").fields["parsed"])
}

func TestLoggerStreamRequestElision(t *testing.T) {
	spec := svcclient.NewSpec()
	spec.Add(&svcclient.Endpoint{Name: "upload", Method: "POST", Path: "/up", StreamRequest: true})

	sink := &capturingSink{}
	client := svcclient.New(spec, okTransport("null"),
		svcclient.WithPlugins(plugins.NewInnerLogger(sink)))

	_, err := client.Call(context.Background(), "upload", []byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "<STREAM>", sink.find(t, "sending request").fields["body"])
}

func TestLoggerTruncatesLongBodies(t *testing.T) {
	sink := &capturingSink{}
	inner := plugins.NewInnerLogger(sink)
	inner.MaxBodyLength = 16

	client := svcclient.New(postSpec(nil), okTransport("null"),
		svcclient.WithPlugins(inner))

	long := strings.Repeat("x", 100)
	_, err := client.Call(context.Background(), "send", map[string]any{"blob": long})
	require.NoError(t, err)

	body := sink.find(t, "sending request").fields["body"].(string)
	assert.Len(t, body, 16)
}

func TestLoggerOnExceptionUsesConfiguredLevel(t *testing.T) {
	boom := errors.New("boom")
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return nil, boom
		},
	}

	sink := &capturingSink{}
	inner := plugins.NewInnerLogger(sink)
	inner.OnExceptionLevel = svcclient.LevelWarning

	client := svcclient.New(postSpec(nil), transport, svcclient.WithPlugins(inner))
	_, err := client.Call(context.Background(), "send", nil)
	require.Error(t, err)

	failed := sink.find(t, "request failed")
	assert.Equal(t, svcclient.LevelWarning, failed.level)
	assert.Contains(t, failed.fields["error"].(string), "boom")
}

func TestLoggerOnParseExceptionRecord(t *testing.T) {
	sink := &capturingSink{}
	client := svcclient.New(postSpec(nil), okTransport("not json"),
		svcclient.WithPlugins(plugins.NewInnerLogger(sink)))

	_, err := client.Call(context.Background(), "send", nil)
	require.Error(t, err)

	record := sink.find(t, "response parse failed")
	assert.Equal(t, svcclient.LevelError, record.level)
	assert.Equal(t, 200, record.fields["status_code"])
}
