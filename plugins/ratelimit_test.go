// SPDX-License-Identifier: GPL-3.0-or-later

package plugins_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcclient "github.com/alfred82santa/aio-service-client"
	"github.com/alfred82santa/aio-service-client/plugins"
	"github.com/alfred82santa/aio-service-client/svctest"
)

func TestRateLimitDelaysPermitReuseByPeriod(t *testing.T) {
	const period = 100 * time.Millisecond

	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	client := svcclient.New(poolSpec(), transport,
		svcclient.WithPlugins(plugins.NewRateLimit(1, period, 5, time.Minute)))

	start := time.Now()
	_, err := client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)
	first := time.Since(start)

	// The second call must wait out the remainder of the period even
	// though the first one finished almost instantly.
	_, err = client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)
	second := time.Since(start)

	assert.Less(t, first, period/2, "the first call should not be delayed")
	assert.GreaterOrEqual(t, second, period*8/10)
}

func TestRateLimitAllowsBurstUpToRate(t *testing.T) {
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	client := svcclient.New(poolSpec(), transport,
		svcclient.WithPlugins(plugins.NewRateLimit(3, time.Minute, 0, 10*time.Millisecond)))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Call(context.Background(), "ping", nil)
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	// The fourth call exceeds the rate and there is no queue, so the
	// waiter gives up after its wait timeout.
	_, err := client.Call(context.Background(), "ping", nil)
	var timedOut *svcclient.ErrTooMuchTimePending
	require.ErrorAs(t, err, &timedOut)
}

func TestRateLimitRecordsBlockedTime(t *testing.T) {
	transport := &svctest.FuncTransport{
		DoFunc: func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return svctest.NewStatusResponse(200, "null"), nil
		},
	}

	var blocked any
	spy := &sessionSpy{after: func(session *svcclient.SessionWrapper) {
		blocked, _ = session.Get(plugins.BlockedByRateLimitKey)
	}}

	client := svcclient.New(poolSpec(), transport,
		svcclient.WithPlugins(plugins.NewRateLimit(1, 50*time.Millisecond, 5, time.Minute), spy))

	_, err := client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)
	_, err = client.Call(context.Background(), "ping", nil)
	require.NoError(t, err)

	d, ok := blocked.(time.Duration)
	require.True(t, ok)
	assert.GreaterOrEqual(t, d, 30*time.Millisecond, "the second call should have waited out the period")
}
