// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	svcclient "github.com/alfred82santa/aio-service-client"
)

func TestDefaultErrClassifier(t *testing.T) {
	classifier := svcclient.DefaultErrClassifier()

	// Nil error classifies as the empty string.
	assert.Equal(t, "", classifier.Classify(nil))

	// Context deadline/cancellation.
	assert.Equal(t, "ETIMEDOUT", classifier.Classify(context.DeadlineExceeded))
	assert.Equal(t, "ECANCELED", classifier.Classify(context.Canceled))

	// This package's own sentinels, also when wrapped.
	assert.Equal(t, "ETIMEDOUT", classifier.Classify(&svcclient.ErrTimeout{Timeout: 1}))
	assert.Equal(t, "ETIMEDOUT", classifier.Classify(&svcclient.ErrTooMuchTimePending{Timeout: 1}))
	assert.Equal(t, "ENOBUFS", classifier.Classify(&svcclient.ErrTooManyRequestsPending{HardLimit: 1}))
	assert.Equal(t, "ECONNABORTED", classifier.Classify(&svcclient.ErrConnectionClosed{}))
	assert.Equal(t, "ETIMEDOUT", classifier.Classify(fmt.Errorf("call failed: %w", &svcclient.ErrTimeout{Timeout: 1})))

	// Anything unrecognized is generic.
	assert.Equal(t, "EGENERIC", classifier.Classify(errors.New("unknown error")))
}

func TestErrClassifierFunc(t *testing.T) {
	classifier := svcclient.ErrClassifierFunc(func(err error) string { return "ALWAYS" })
	assert.Equal(t, "ALWAYS", classifier.Classify(errors.New("x")))
}
