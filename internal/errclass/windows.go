//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package errclass

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

func classifyErrno(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	switch errno {
	case windows.WSAEADDRNOTAVAIL:
		return EADDRNOTAVAIL
	case windows.WSAEADDRINUSE:
		return EADDRINUSE
	case windows.WSAECONNABORTED:
		return ECONNABORTED
	case windows.WSAECONNREFUSED:
		return ECONNREFUSED
	case windows.WSAECONNRESET:
		return ECONNRESET
	case windows.WSAEHOSTUNREACH:
		return EHOSTUNREACH
	case windows.WSAEINVAL:
		return EINVAL
	case windows.WSAEINTR:
		return EINTR
	case windows.WSAENETDOWN:
		return ENETDOWN
	case windows.WSAENETUNREACH:
		return ENETUNREACH
	case windows.WSAENOBUFS:
		return ENOBUFS
	case windows.WSAENOTCONN:
		return ENOTCONN
	case windows.WSAEPROTONOSUPPORT:
		return EPROTONOSUPPORT
	case windows.WSAETIMEDOUT:
		return ETIMEDOUT
	default:
		return ""
	}
}
