// SPDX-License-Identifier: GPL-3.0-or-later

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/google/uuid"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// BaseMock answers every call with a fixed status code, headers, and
// body.
type BaseMock struct {
	id         uuid.UUID
	StatusCode int
	Headers    map[string][]string
	Body       []byte
}

var _ Definition = (*BaseMock)(nil)

// NewBaseMock creates a BaseMock with a fresh identity.
func NewBaseMock(statusCode int, headers map[string][]string, body []byte) *BaseMock {
	return &BaseMock{id: uuid.New(), StatusCode: statusCode, Headers: headers, Body: body}
}

// ID implements [Definition].
func (m *BaseMock) ID() uuid.UUID { return m.id }

// Handle implements [Definition].
func (m *BaseMock) Handle(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
	return &svcclient.TransportResponse{
		StatusCode: m.StatusCode,
		Headers:    m.Headers,
		Body:       io.NopCloser(strings.NewReader(string(m.Body))),
	}, nil
}

// RawDataMock is like [BaseMock] but built from an in-memory string,
// for tests that don't want to touch the filesystem.
func RawDataMock(statusCode int, headers map[string][]string, data string) *BaseMock {
	return NewBaseMock(statusCode, headers, []byte(data))
}

// JsonDataMock is like [RawDataMock] but marshals value to JSON and sets
// a "Content-Type: application/json" header. value must be a map or a
// slice; a scalar fails with a value error.
func JsonDataMock(statusCode int, headers map[string][]string, value any) (*BaseMock, error) {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("mock: JsonDataMock requires a map or list, got %T", value)
	}
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	merged := map[string][]string{"Content-Type": {"application/json"}}
	for k, v := range headers {
		merged[k] = v
	}
	return NewBaseMock(statusCode, merged, body), nil
}

// RawFileMock answers every call with the fixed status code and headers
// of [BaseMock], but reads its body from a file on demand, so tests can
// keep large or binary fixture payloads out of Go source.
type RawFileMock struct {
	id         uuid.UUID
	StatusCode int
	Headers    map[string][]string
	Path       string
}

var _ Definition = (*RawFileMock)(nil)

// NewRawFileMock creates a RawFileMock reading its body from path.
func NewRawFileMock(statusCode int, headers map[string][]string, path string) *RawFileMock {
	return &RawFileMock{id: uuid.New(), StatusCode: statusCode, Headers: headers, Path: path}
}

// ID implements [Definition].
func (m *RawFileMock) ID() uuid.UUID { return m.id }

// Handle implements [Definition].
func (m *RawFileMock) Handle(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
	f, err := os.Open(m.Path)
	if err != nil {
		return nil, err
	}
	return &svcclient.TransportResponse{
		StatusCode: m.StatusCode,
		Headers:    m.Headers,
		Body:       f,
	}, nil
}
