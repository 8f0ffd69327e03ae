// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "fmt"

// SpecError is returned when [Client.Call] is invoked with an endpoint
// name not present in the [Spec]. It is raised before any hook runs.
type SpecError struct {
	Endpoint string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("svcclient: endpoint %q is not declared in the spec", e.Endpoint)
}

// PluginError wraps any error raised inside a plugin hook. The Hook field
// names the lifecycle stage (e.g. "prepare_path") and Plugin identifies
// the offending plugin's type for diagnostics.
type PluginError struct {
	Hook   string
	Plugin string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("svcclient: plugin %s failed in %s: %v", e.Plugin, e.Hook, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }

// TransportError wraps any error raised by the external HTTP transport.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("svcclient: transport error calling %q: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrTimeout is returned by the Timeout plugin's scoped guard when the
// underlying request does not complete within the resolved timeout.
type ErrTimeout struct {
	Timeout float64
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("svcclient: request timed out after %.3fs", e.Timeout)
}

// ErrTooManyRequestsPending is a [RequestLimitError] subkind raised when a
// Pool/RateLimit admission queue has reached its hard_limit of pending
// waiters. No permit was ever acquired in this path.
type ErrTooManyRequestsPending struct {
	HardLimit int
}

func (e *ErrTooManyRequestsPending) Error() string {
	return fmt.Sprintf("svcclient: too many requests pending (hard limit %d)", e.HardLimit)
}

// ErrTooMuchTimePending is a [RequestLimitError] subkind raised when a
// waiter's deadline elapses before a permit becomes available. No permit
// was ever acquired in this path.
type ErrTooMuchTimePending struct {
	Timeout float64
}

func (e *ErrTooMuchTimePending) Error() string {
	return fmt.Sprintf("svcclient: timed out after %.3fs waiting for admission", e.Timeout)
}

// ParseError wraps an error raised by the parser. Response carries the
// [*ResponseWrapper] under construction, attached before the error is
// returned to the caller.
type ParseError struct {
	Endpoint string
	Response *ResponseWrapper
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("svcclient: failed to parse response from %q: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrConnectionClosed is raised inside Pool/RateLimit waiters (and
// returned to any caller still blocked in admission) when [Client.Close]
// runs.
type ErrConnectionClosed struct{}

func (e *ErrConnectionClosed) Error() string {
	return "svcclient: connection closed"
}
