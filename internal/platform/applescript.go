package platform

import (
	"fmt"
	"strings"
)

// appleScript builds the osascript notification line. The app name becomes
// the subtitle when it differs from the title.
func appleScript(title, body string, opts Options) string {
	script := fmt.Sprintf("display notification %s with title %s", quoteAS(body), quoteAS(title))
	if app := opts.appName(); app != title {
		script += " subtitle " + quoteAS(app)
	}
	return script
}

// quoteAS quotes s as an AppleScript string literal, which only knows the
// backslash and double quote escapes.
func quoteAS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return `"` + s + `"`
}
