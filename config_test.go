// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcclient "github.com/alfred82santa/aio-service-client"
)

func TestNewConfig(t *testing.T) {
	cfg := svcclient.NewConfig()

	require.NotNil(t, cfg)

	// ErrClassifier should use the default classifier
	assert.Equal(t, "", cfg.ErrClassifier.Classify(nil))
	assert.Equal(t, "ETIMEDOUT", cfg.ErrClassifier.Classify(context.DeadlineExceeded))

	// TimeNow should be set and return a valid time
	now := cfg.TimeNow()
	assert.False(t, now.IsZero())

	assert.Equal(t, svcclient.DefaultServiceName, cfg.ServiceName)
	assert.NotNil(t, cfg.Logger)
	assert.NotNil(t, cfg.RandomToken)
}

func TestDefaultRandomToken(t *testing.T) {
	token := svcclient.DefaultRandomToken(10)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{10}$`), token)

	assert.Equal(t, "", svcclient.DefaultRandomToken(0))
	assert.Equal(t, "", svcclient.DefaultRandomToken(-1))

	// Two consecutive tokens colliding would mean the generator is not
	// actually random.
	assert.NotEqual(t, svcclient.DefaultRandomToken(16), svcclient.DefaultRandomToken(16))
}
