// SPDX-License-Identifier: GPL-3.0-or-later

// Package svctest provides function-field stub doubles for testing code
// built on the svcclient package without a real HTTP transport.
package svctest

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// FuncTransport is a [svcclient.Transport] whose Do and Close methods
// delegate to whatever function fields a test assigns. A nil DoFunc
// causes Do to return [ErrNotImplemented]; a nil CloseFunc makes Close a
// no-op.
type FuncTransport struct {
	DoFunc    func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error)
	CloseFunc func(ctx context.Context) error
}

var _ svcclient.Transport = (*FuncTransport)(nil)

// ErrNotImplemented is returned by [FuncTransport.Do] when DoFunc is nil.
type ErrNotImplemented struct{}

func (ErrNotImplemented) Error() string { return "svctest: DoFunc not implemented" }

// Do implements [svcclient.Transport].
func (t *FuncTransport) Do(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
	if t.DoFunc == nil {
		return nil, &ErrNotImplemented{}
	}
	return t.DoFunc(ctx, req)
}

// Close implements [svcclient.Transport].
func (t *FuncTransport) Close(ctx context.Context) error {
	if t.CloseFunc == nil {
		return nil
	}
	return t.CloseFunc(ctx)
}

// NewStatusResponse builds a [*svcclient.TransportResponse] with the
// given status code and string body, a small convenience for tests that
// assign DoFunc inline.
func NewStatusResponse(statusCode int, body string) *svcclient.TransportResponse {
	return &svcclient.TransportResponse{
		StatusCode: statusCode,
		Headers:    map[string][]string{},
		Body:       newBody(body),
	}
}
