// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"time"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// BlockedByPoolKey is the [svcclient.SessionWrapper] attribute key Pool
// records the time spent waiting for admission under, even when
// admission ultimately fails.
const BlockedByPoolKey = "blocked_by_pool"

const poolAcquiredKey = "pool_acquired"

// Pool bounds the number of concurrent transport calls to Size. Callers
// beyond Size queue up to HardLimit deep, each bounded by WaitTimeout.
type Pool struct {
	Size        int
	HardLimit   int
	WaitTimeout time.Duration

	admission *admission
}

var (
	_ svcclient.BeforeRequester = (*Pool)(nil)
	_ svcclient.OnResponser     = (*Pool)(nil)
	_ svcclient.OnExceptioner   = (*Pool)(nil)
	_ svcclient.Closer          = (*Pool)(nil)
)

// NewPool creates a Pool admitting at most size concurrent requests, with
// up to hardLimit additional callers queued, each waiting at most
// waitTimeout for a permit (0 means wait indefinitely).
func NewPool(size, hardLimit int, waitTimeout time.Duration) *Pool {
	return &Pool{
		Size:        size,
		HardLimit:   hardLimit,
		WaitTimeout: waitTimeout,
		admission:   newAdmission(size, hardLimit, waitTimeout),
	}
}

// Name implements [svcclient.Plugin].
func (*Pool) Name() string { return "pool" }

// BeforeRequest implements [svcclient.BeforeRequester]. It blocks until a
// permit is available, recording the time spent blocked on the session
// (under [BlockedByPoolKey]) whether or not admission succeeds. On
// success it marks the call as holding a permit, so exactly one of
// OnResponse/OnException releases it later.
func (p *Pool) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	start := time.Now()
	err := p.admission.acquire(ctx)
	session.Set(BlockedByPoolKey, time.Since(start))
	if err != nil {
		return err
	}
	params.Set(poolAcquiredKey, true)
	return nil
}

// OnResponse implements [svcclient.OnResponser]: releases the permit
// acquired at before_request.
func (p *Pool) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	p.releaseIfAcquired(paramsOf(response))
	return nil
}

// OnException implements [svcclient.OnExceptioner]: releases the permit,
// if one was acquired before the call failed. Admission failures
// (ErrTooManyRequestsPending, ErrTooMuchTimePending) never acquired one,
// so nothing is released for them.
func (p *Pool) OnException(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams, err error) error {
	p.releaseIfAcquired(params)
	return nil
}

func (p *Pool) releaseIfAcquired(params *svcclient.RequestParams) {
	if params == nil || !params.Has(poolAcquiredKey) {
		return
	}
	params.Delete(poolAcquiredKey)
	p.admission.release()
}

// Close implements [svcclient.Closer]. It releases every waiter queued on
// the pool's admission gate with [svcclient.ErrConnectionClosed].
func (p *Pool) Close(ctx context.Context) error {
	p.admission.close()
	return nil
}
