//go:build darwin

package platform

import "os/exec"

// Notify posts to Notification Center through osascript. IconPath is
// ignored; AppleScript notifications always carry the Script Editor icon.
func Notify(title, body string, opts Options) error {
	return exec.Command("osascript", "-e", appleScript(title, body, opts)).Run()
}
