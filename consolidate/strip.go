package consolidate

import (
	"regexp"
	"strings"
)

// ansiSeq matches terminal control sequences (CSI and OSC) so runner
// output can be shown as plain text.
var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)

// stripControl removes ANSI escape sequences and non-printing control
// characters from s, keeping newlines and tabs.
func stripControl(s string) string {
	s = ansiSeq.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
