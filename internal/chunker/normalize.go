package chunker

import (
	"regexp"
	"strings"
)

var blankRun = regexp.MustCompile(`\n{3,}`)

// Normalize converts CRLF and CR line endings to LF and collapses runs of
// blank lines into a single blank line. Page markers are left untouched.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return blankRun.ReplaceAllString(text, "\n\n")
}
