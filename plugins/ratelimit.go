// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"
	"time"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// BlockedByRateLimitKey is the [svcclient.SessionWrapper] attribute key
// RateLimit records the time spent waiting for admission under, even
// when admission ultimately fails.
const BlockedByRateLimitKey = "blocked_by_ratelimit"

const rateLimitAcquiredKey = "ratelimit_acquired"

// RateLimit bounds the number of requests started within any Period to
// Rate. Callers beyond Rate queue up to HardLimit deep, each bounded by
// WaitTimeout.
type RateLimit struct {
	Rate        int
	Period      time.Duration
	HardLimit   int
	WaitTimeout time.Duration

	admission *admission
}

var (
	_ svcclient.BeforeRequester = (*RateLimit)(nil)
	_ svcclient.OnResponser     = (*RateLimit)(nil)
	_ svcclient.OnExceptioner   = (*RateLimit)(nil)
	_ svcclient.Closer          = (*RateLimit)(nil)
)

// NewRateLimit creates a RateLimit admitting at most rate requests per
// period, with up to hardLimit additional callers queued, each waiting at
// most waitTimeout for a permit.
func NewRateLimit(rate int, period time.Duration, hardLimit int, waitTimeout time.Duration) *RateLimit {
	return &RateLimit{
		Rate:        rate,
		Period:      period,
		HardLimit:   hardLimit,
		WaitTimeout: waitTimeout,
		admission:   newAdmission(rate, hardLimit, waitTimeout),
	}
}

// Name implements [svcclient.Plugin].
func (*RateLimit) Name() string { return "rate_limit" }

// BeforeRequest implements [svcclient.BeforeRequester]. Same admission
// protocol as [Pool.BeforeRequest], recording blocked time under
// [BlockedByRateLimitKey].
func (r *RateLimit) BeforeRequest(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	start := time.Now()
	err := r.admission.acquire(ctx)
	session.Set(BlockedByRateLimitKey, time.Since(start))
	if err != nil {
		return err
	}
	params.Set(rateLimitAcquiredKey, true)
	return nil
}

// OnResponse implements [svcclient.OnResponser]: schedules the permit
// release for Period from now.
func (r *RateLimit) OnResponse(ctx context.Context, response *svcclient.ResponseWrapper) error {
	r.scheduleReleaseIfAcquired(paramsOf(response))
	return nil
}

// OnException implements [svcclient.OnExceptioner]: schedules the permit
// release, if one was acquired before the call failed.
func (r *RateLimit) OnException(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams, err error) error {
	r.scheduleReleaseIfAcquired(params)
	return nil
}

func (r *RateLimit) scheduleReleaseIfAcquired(params *svcclient.RequestParams) {
	if params == nil || !params.Has(rateLimitAcquiredKey) {
		return
	}
	params.Delete(rateLimitAcquiredKey)
	time.AfterFunc(r.Period, r.admission.release)
}

// Close implements [svcclient.Closer]. It releases every waiter queued on
// the rate limiter's admission gate with [svcclient.ErrConnectionClosed].
func (r *RateLimit) Close(ctx context.Context) error {
	r.admission.close()
	return nil
}
