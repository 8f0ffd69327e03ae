// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import (
	"crypto/rand"
	"time"
)

// Config bundles the cross-cutting dependencies every [Client] needs. Its
// zero value is not ready to use; construct one with [NewConfig] so that
// every field gets a sane default, then override individual fields.
type Config struct {
	// ErrClassifier classifies errors for log fields. Defaults to
	// [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger receives lifecycle debug/info events. Defaults to
	// [DefaultSLogger].
	Logger SLogger

	// TimeNow returns the current time. Overridable for deterministic
	// tests of the Timeout/Elapsed plugins.
	TimeNow func() time.Time

	// ServiceName identifies this client in log records and mock
	// registry selectors. Defaults to [DefaultServiceName].
	ServiceName string

	// RandomToken generates an n-character random token. Used by the
	// TrackingToken plugin; overridable for deterministic tests.
	// Defaults to [DefaultRandomToken].
	RandomToken func(n int) string
}

// DefaultServiceName is used when [Config.ServiceName] is empty.
const DefaultServiceName = "GenericService"

// NewConfig creates a new [Config] with every field set to its default.
func NewConfig() *Config {
	return &Config{
		ErrClassifier: DefaultErrClassifier(),
		Logger:        DefaultSLogger(),
		TimeNow:       time.Now,
		ServiceName:   DefaultServiceName,
		RandomToken:   DefaultRandomToken,
	}
}

const randomTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultRandomToken generates an n-character token drawn uniformly from
// upper-case letters and digits (e.g. matching "^[A-Z0-9]{10}$" for
// n = 10).
func DefaultRandomToken(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read on the standard reader does not fail in
		// practice; fall back to a fixed character rather than panic.
		for i := range buf {
			buf[i] = 'A'
		}
		return string(buf)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = randomTokenAlphabet[int(b)%len(randomTokenAlphabet)]
	}
	return string(out)
}

func (c *Config) orDefaults() *Config {
	if c == nil {
		return NewConfig()
	}
	out := *c
	if out.ErrClassifier == nil {
		out.ErrClassifier = DefaultErrClassifier()
	}
	if out.Logger == nil {
		out.Logger = DefaultSLogger()
	}
	if out.TimeNow == nil {
		out.TimeNow = time.Now
	}
	if out.ServiceName == "" {
		out.ServiceName = DefaultServiceName
	}
	if out.RandomToken == nil {
		out.RandomToken = DefaultRandomToken
	}
	return &out
}
