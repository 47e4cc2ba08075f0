//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

import "errors"

// ListMonitors is not implemented on this platform.
func ListMonitors() ([]Monitor, error) {
	return nil, errors.New("monitor listing is not supported on this platform")
}
