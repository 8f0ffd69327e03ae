// SPDX-License-Identifier: GPL-3.0-or-later

package svctest

import (
	"io"
	"strings"
)

func newBody(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}
