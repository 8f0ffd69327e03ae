// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "encoding/json"

// SerializeContext carries the call state a [Serializer] may consult
// beyond the payload itself.
type SerializeContext struct {
	Session       *SessionWrapper
	EndpointDesc  *Endpoint
	RequestParams *RequestParams
}

// ParseContext carries the call state a [Parser] may consult beyond the
// raw body itself.
type ParseContext struct {
	Session      *SessionWrapper
	EndpointDesc *Endpoint
	Response     *ResponseWrapper
}

// Serializer turns a request payload into wire bytes.
type Serializer interface {
	Serialize(payload any, sctx *SerializeContext) ([]byte, error)
}

// Parser turns a fully-read response body into an application value.
// The default JSON parser returns (nil, nil) for an empty body rather
// than failing on empty input.
type Parser interface {
	Parse(raw []byte, pctx *ParseContext) (any, error)
}

// SerializerFunc adapts a function to a [Serializer].
type SerializerFunc func(payload any, sctx *SerializeContext) ([]byte, error)

// Serialize implements [Serializer].
func (f SerializerFunc) Serialize(payload any, sctx *SerializeContext) ([]byte, error) {
	return f(payload, sctx)
}

// ParserFunc adapts a function to a [Parser].
type ParserFunc func(raw []byte, pctx *ParseContext) (any, error)

// Parse implements [Parser].
func (f ParserFunc) Parse(raw []byte, pctx *ParseContext) (any, error) {
	return f(raw, pctx)
}

// DefaultSerializer returns a [Serializer] that marshals payload with
// [encoding/json], returning nil bytes for a nil payload.
//
// This is implemented directly on encoding/json rather than a
// third-party codec: JSON (de)serialization here is a one-line
// std-library call with no domain logic of its own to justify pulling in
// an external codec, unlike the framework surfaces above it.
func DefaultSerializer() Serializer {
	return SerializerFunc(func(payload any, sctx *SerializeContext) ([]byte, error) {
		if payload == nil {
			return nil, nil
		}
		return json.Marshal(payload)
	})
}

// DefaultParser returns a [Parser] that unmarshals raw into a
// map[string]any/[]any/etc., returning (nil, nil) for empty input.
func DefaultParser() Parser {
	return ParserFunc(func(raw []byte, pctx *ParseContext) (any, error) {
		if len(raw) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}
