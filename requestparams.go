// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

// RequestParams carries one call's request state as it flows through the
// prepare_path, prepare_request_params, prepare_payload, and
// before_request stages. Plugins read and mutate it in place; chained
// stages additionally pass along a return value (see [Plugin]).
type RequestParams struct {
	attrs

	Endpoint string
	Method   string

	// EndpointDesc is the per-call shallow copy of the declared
	// [Endpoint]. Hooks that only receive a
	// [*ResponseWrapper] reach it via response.Get([RequestParamsKey])
	// and then this field, since every response-side hook's params are
	// stashed there at the start of the call (see client.go).
	EndpointDesc *Endpoint

	// Path is the endpoint's path template until prepare_path resolves
	// it into a concrete path, then the resolved path.
	Path string

	// PathParams supplies values for "{token}" placeholders in Path. The
	// PathTokens plugin consumes these.
	PathParams map[string]string

	// Query holds query-string parameters, repeatable per key.
	Query map[string][]string

	// Headers holds request headers, repeatable per key.
	Headers map[string][]string

	// Payload is the request body before serialization. A nil Payload
	// means no body.
	Payload any

	// Body is the serialized payload, set by the time before_request
	// runs.
	Body []byte
}

// NewRequestParams creates an empty [RequestParams] for endpoint.
func NewRequestParams(endpoint, method, path string) *RequestParams {
	return &RequestParams{
		Endpoint:   endpoint,
		Method:     method,
		Path:       path,
		PathParams: map[string]string{},
		Query:      map[string][]string{},
		Headers:    map[string][]string{},
	}
}

// AddQuery appends a query parameter value.
func (p *RequestParams) AddQuery(key, value string) {
	p.Query[key] = append(p.Query[key], value)
}

// SetHeader overwrites a request header, discarding any previous values.
func (p *RequestParams) SetHeader(key, value string) {
	p.Headers[key] = []string{value}
}

// AddHeader appends a request header value.
func (p *RequestParams) AddHeader(key, value string) {
	p.Headers[key] = append(p.Headers[key], value)
}
