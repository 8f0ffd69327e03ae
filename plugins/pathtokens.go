// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugins ships the bundled [svcclient.Plugin] implementations.
package plugins

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// PathTokens resolves "{token}" placeholders in the endpoint path
// template, merging (lowest to highest precedence) its constructor
// Default tokens, the endpoint's PathTokens, and the call's PathParams.
// Any token with no matching entry at any layer is left untouched for a
// later plugin to resolve. Every token this plugin did substitute is
// removed from the call's PathParams afterward, so it is not also
// forwarded to the transport as request state.
type PathTokens struct {
	Default map[string]string
}

var _ svcclient.PreparePathier = (*PathTokens)(nil)

// NewPathTokens creates a PathTokens plugin with the given default
// substitution values.
func NewPathTokens(defaults map[string]string) *PathTokens {
	return &PathTokens{Default: defaults}
}

// Name implements [svcclient.Plugin].
func (*PathTokens) Name() string { return "path_tokens" }

// PreparePath implements [svcclient.PreparePathier].
func (t *PathTokens) PreparePath(ctx context.Context, path string, params *svcclient.RequestParams) (string, error) {
	merged := map[string]string{}
	for k, v := range t.Default {
		merged[k] = v
	}
	if params.EndpointDesc != nil {
		for k, v := range params.EndpointDesc.PathTokens {
			merged[k] = v
		}
	}
	for k, v := range params.PathParams {
		merged[k] = v
	}

	result, substituted, _ := svcclient.PartialFormat(path, merged)
	for _, name := range substituted {
		delete(params.PathParams, name)
	}
	return result, nil
}
