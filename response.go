// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "io"

// RequestParamsKey is the [ResponseWrapper] attribute key under which
// [Client.Call] stashes the originating [*RequestParams], so that
// response-only hooks (PrepareResponser, OnResponser, OnReader,
// OnParsedResponser) can still reach request-scoped state a plugin
// recorded earlier in the same call (e.g. Elapsed's start timestamp).
const RequestParamsKey = "__request_params"

// ResponseWrapper carries one call's raw transport response plus whatever
// state plugins attach to it across the prepare_response, on_response,
// on_read, and on_parsed_response stages.
type ResponseWrapper struct {
	attrs

	Endpoint   string
	StatusCode int
	Headers    map[string][]string
	body       io.ReadCloser

	readDone bool
	raw      []byte
	parsed   any
}

// Header returns the first value of the named response header, or "" if
// absent.
func (r *ResponseWrapper) Header(name string) string {
	for k, vs := range r.Headers {
		if equalFoldASCII(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// Read returns the full response body, reading and closing the
// underlying body on first use and caching the bytes for every later
// call. The pipeline's Reading stage calls it before firing on_read; a
// plugin hook running earlier (e.g. InnerLogger's on_response) may call
// it too, and the Reading stage then reuses the cached bytes.
func (r *ResponseWrapper) Read() ([]byte, error) {
	if r.readDone {
		return r.raw, nil
	}
	if r.body == nil {
		r.readDone = true
		return nil, nil
	}
	defer r.body.Close()

	data, err := io.ReadAll(r.body)
	if err != nil {
		return nil, err
	}
	r.raw = data
	r.readDone = true
	return data, nil
}

// Text returns the full response body as a string (see [ResponseWrapper.Read]).
func (r *ResponseWrapper) Text() (string, error) {
	data, err := r.Read()
	return string(data), err
}

// Raw returns the fully-read response body, available once
// [ResponseWrapper.Read] has run (nil before that).
func (r *ResponseWrapper) Raw() []byte {
	return r.raw
}

// Parsed returns the value produced by the [Parser] for this response,
// available once on_parsed_response has completed.
func (r *ResponseWrapper) Parsed() any {
	return r.parsed
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
