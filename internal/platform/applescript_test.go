package platform

import "testing"

func TestAppleScript(t *testing.T) {
	cases := []struct {
		title, body string
		opts        Options
		want        string
	}{
		{"Saved", "design.png", Options{}, `display notification "design.png" with title "Saved" subtitle "ShineyCanvas"`},
		{"ShineyCanvas", "copied", Options{}, `display notification "copied" with title "ShineyCanvas"`},
		{"Saved", "a \"b\"\nc\\d", Options{AppName: "Pages"}, `display notification "a \"b\" c\\d" with title "Saved" subtitle "Pages"`},
	}
	for _, c := range cases {
		if got := appleScript(c.title, c.body, c.opts); got != c.want {
			t.Errorf("appleScript(%q, %q) = %s, want %s", c.title, c.body, got, c.want)
		}
	}
}
