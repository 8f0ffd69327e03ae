// SPDX-License-Identifier: GPL-3.0-or-later

// Package svcclient provides a declarative, plugin-driven HTTP client
// framework.
//
// # Core Abstraction
//
// Endpoints are not written as procedural calls. They are declared once in
// a [Spec] (endpoint name -> method, path template, per-endpoint defaults)
// and invoked by name through a single generic entry point, [Client.Call].
// A pipeline of [Plugin] hooks mutates the request, the underlying
// [Transport] session, the response, and observability state at well
// defined lifecycle stages:
//
//	prepare_session -> prepare_path -> prepare_request_params ->
//	prepare_payload -> before_request -> transport.Do ->
//	prepare_response -> on_response -> on_read -> on_parsed_response
//
// Each stage visits every registered plugin that implements the matching
// optional interface (see plugin.go), in registration order. Chained
// stages (prepare_path, prepare_payload) are strict left-folds: plugin N
// sees plugin N-1's result.
//
// # Bundled Plugins
//
// The plugins subpackage ships PathTokens, Headers, QueryParams, Timeout,
// Elapsed, TrackingToken, InnerLogger/OuterLogger, Pool, and RateLimit.
// The mock subpackage ships a programmable transport-stub registry used in
// tests.
//
// # Transport Boundary
//
// This package never dials a socket. [Transport] is the only contract
// it needs from the underlying HTTP implementation: a request/response
// round trip and a close operation. Any concrete HTTP client library can
// satisfy it.
//
// # Observability
//
// All core types accept an [SLogger] (compatible with [log/slog]) for
// lifecycle debug/info logging, and an [ErrClassifier] for turning errors
// into short, stable strings suitable for structured log fields. Both
// default to no-ops; set them explicitly to enable output.
package svcclient
