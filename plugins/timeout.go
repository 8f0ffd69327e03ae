// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"time"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// TimeoutParamKey is the [svcclient.RequestParams] attribute key a caller
// or an earlier plugin can set (to a time.Duration) to override the
// Timeout plugin's default for one call.
const TimeoutParamKey = "timeout"

// Timeout bounds the transport round trip with a context deadline,
// translating a deadline-exceeded failure into [*svcclient.ErrTimeout].
type Timeout struct {
	Default time.Duration
}

var _ svcclient.BeforeRequester = (*Timeout)(nil)

// NewTimeout creates a Timeout plugin with the given default duration.
func NewTimeout(d time.Duration) *Timeout {
	return &Timeout{Default: d}
}

// Name implements [svcclient.Plugin].
func (*Timeout) Name() string { return "timeout" }

// BeforeRequest implements [svcclient.BeforeRequester]. Resolution order:
// the call's timeout (consumed: removed from params so it isn't also
// forwarded to the transport), else the endpoint's Timeout, else the
// constructor Default; a resolved value of 0 disables the timeout
// outright. The resolved value is recorded on the session under
// [TimeoutParamKey] and enforced by decorating the session's transport
// call with a deadline-scoped wrapper.
func (t *Timeout) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	timeout := t.Default
	if params.EndpointDesc != nil && params.EndpointDesc.Timeout != nil {
		timeout = *params.EndpointDesc.Timeout
	}
	if v, ok := params.Get(TimeoutParamKey); ok {
		if d, ok := v.(time.Duration); ok {
			timeout = d
		}
		params.Delete(TimeoutParamKey)
	}
	if timeout <= 0 {
		return nil
	}
	session.Set(TimeoutParamKey, timeout)

	session.Decorate(func(next svcclient.TransportDoFunc) svcclient.TransportDoFunc {
		return func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			resp, err := next(cctx, req)
			if err != nil && cctx.Err() == context.DeadlineExceeded {
				return nil, &svcclient.ErrTimeout{Timeout: timeout.Seconds()}
			}
			return resp, err
		}
	})
	return nil
}
