//go:build !linux && !darwin && !windows

package platform

// Notify drops the message; this platform has no notification service we
// can reach without cgo.
func Notify(title, body string, opts Options) error {
	return nil
}
