// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// Headers composes a case-insensitive three-layer default: its
// constructor Default, then the endpoint's Headers, then whatever the
// caller already set on the call; the last layer wins on key collision,
// case-insensitively.
type Headers struct {
	Default map[string][]string
}

var _ svcclient.PrepareRequestParamser = (*Headers)(nil)

// NewHeaders creates a Headers plugin with the given defaults.
func NewHeaders(defaults map[string][]string) *Headers {
	return &Headers{Default: defaults}
}

// Name implements [svcclient.Plugin].
func (*Headers) Name() string { return "headers" }

// PrepareRequestParams implements [svcclient.PrepareRequestParamser].
func (h *Headers) PrepareRequestParams(ctx context.Context, params *svcclient.RequestParams) error {
	var endpointHeaders map[string][]string
	if params.EndpointDesc != nil {
		endpointHeaders = params.EndpointDesc.Headers
	}
	params.Headers = svcclient.MergeHeaders(h.Default, endpointHeaders, params.Headers)
	return nil
}
