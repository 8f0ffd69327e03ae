// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "context"

// withPrepareResponseFunc attaches the prepare_response firing function
// to ctx so that a [Transport] implementation can invoke it via
// [FirePrepareResponse] from inside its Do method, once status/headers
// are available but before the body is read.
func withPrepareResponseFunc(ctx context.Context, fire func(context.Context, *ResponseWrapper) error) context.Context {
	return context.WithValue(ctx, transportKey, fire)
}
