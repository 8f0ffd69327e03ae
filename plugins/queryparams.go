// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// QueryParams composes a three-layer default over query parameters: its
// constructor Default, then the endpoint's QueryParams, then whatever the
// caller already set on the call. A key explicitly set to null at any
// layer (see [svcclient.WithoutQueryParam]) is dropped from the outgoing
// request unless a higher-precedence layer supplies a real value.
type QueryParams struct {
	Default map[string][]string
}

var _ svcclient.PrepareRequestParamser = (*QueryParams)(nil)

// NewQueryParams creates a QueryParams plugin with the given defaults.
func NewQueryParams(defaults map[string][]string) *QueryParams {
	return &QueryParams{Default: defaults}
}

// Name implements [svcclient.Plugin].
func (*QueryParams) Name() string { return "query_params" }

// PrepareRequestParams implements [svcclient.PrepareRequestParamser].
func (q *QueryParams) PrepareRequestParams(ctx context.Context, params *svcclient.RequestParams) error {
	var endpointQuery map[string][]string
	if params.EndpointDesc != nil {
		endpointQuery = params.EndpointDesc.QueryParams
	}
	params.Query = svcclient.MergeQueryParams(q.Default, endpointQuery, params.Query)
	return nil
}
