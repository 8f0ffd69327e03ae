// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import (
	"errors"

	"github.com/alfred82santa/aio-service-client/internal/errclass"
)

// ErrClassifier turns an error into a short, stable string suitable for a
// structured log field (e.g. "ETIMEDOUT"). Implementations must return the
// empty string for a nil error.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to an [ErrClassifier].
type ErrClassifierFunc func(err error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier returns the default [ErrClassifier].
//
// It recognizes this package's own sentinel errors first ([*ErrTimeout]
// and [*ErrTooMuchTimePending] as ETIMEDOUT, [*ErrTooManyRequestsPending]
// as ENOBUFS, [*ErrConnectionClosed] as ECONNABORTED), then context
// cancellation/deadlines, [net.Error] timeouts, [*net.DNSError], and
// OS-level socket errno values, falling back to errclass.EGENERIC for
// anything else.
func DefaultErrClassifier() ErrClassifier {
	return ErrClassifierFunc(func(err error) string {
		if err == nil {
			return ""
		}
		var (
			timeout     *ErrTimeout
			timePending *ErrTooMuchTimePending
			tooMany     *ErrTooManyRequestsPending
			connClosed  *ErrConnectionClosed
		)
		switch {
		case errors.As(err, &timeout), errors.As(err, &timePending):
			return errclass.ETIMEDOUT
		case errors.As(err, &tooMany):
			return errclass.ENOBUFS
		case errors.As(err, &connClosed):
			return errclass.ECONNABORTED
		}
		return errclass.New(err)
	})
}
