// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "context"

// SessionWrapper decorates a [Transport] for the duration of one
// [Client.Call]. Hooks running before the transport call may use
// Decorate to wrap the underlying Do method, and the embedded [attrs]
// to stash session-scoped state for later hooks.
type SessionWrapper struct {
	attrs

	transport Transport
	decorator func(next TransportDoFunc) TransportDoFunc
}

// TransportDoFunc is the shape of [Transport.Do], usable as a decoration
// point.
type TransportDoFunc func(ctx context.Context, req *TransportRequest) (*TransportResponse, error)

// NewSessionWrapper wraps transport for one call.
func NewSessionWrapper(transport Transport) *SessionWrapper {
	return &SessionWrapper{transport: transport}
}

// Decorate wraps the session's Do function. Plugins that substitute or
// guard the transport call install a decorator here: Mock at
// prepare_session, Timeout at before_request. Decorators compose in
// registration order: the first plugin to call Decorate wraps the
// transport directly, and each subsequent call wraps the previous
// decorator, so the last-installed decorator runs first, outermost.
func (s *SessionWrapper) Decorate(wrap func(next TransportDoFunc) TransportDoFunc) {
	if wrap == nil {
		return
	}
	next := s.do
	if s.decorator != nil {
		next = s.decorator
	}
	s.decorator = wrap(next)
}

func (s *SessionWrapper) do(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	return s.transport.Do(ctx, req)
}

// Do invokes the decorated transport call.
func (s *SessionWrapper) Do(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	if s.decorator != nil {
		return s.decorator(ctx, req)
	}
	return s.do(ctx, req)
}

// Close closes the underlying transport.
func (s *SessionWrapper) Close(ctx context.Context) error {
	return s.transport.Close(ctx)
}
