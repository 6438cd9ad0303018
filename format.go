package main

import (
	"fmt"
	"strings"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/manual"
	"github.com/dustin/go-humanize"
)

// importStats summarizes an import on one line.
func importStats(res *manual.Result) string {
	counts := map[element.Type]int{}
	for _, info := range res.Infos {
		if m, ok := info.(element.Meta); ok && m.Kind == element.Close {
			continue
		}
		counts[info.ElementType()]++
	}

	var parts []string
	for _, t := range element.Types {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(n)), t))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no elements")
	}

	return fmt.Sprintf("%s items (%s), %s",
		humanize.Comma(int64(len(res.Document.Items))),
		strings.Join(parts, ", "),
		plural(len(res.Warnings), "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

// warningList formats warnings as a bullet list of at most limit bytes.
func warningList(warnings []string, limit int) (string, bool) {
	if len(warnings) == 0 {
		return "*No warnings*", false
	}

	b := strings.Builder{}

	var more bool
	for i, w := range warnings {
		line := "• " + w + "\n"
		if b.Len()+len(line) > limit {
			fmt.Fprintf(&b, "*%s omitted*", plural(len(warnings)-i, "more warning"))
			more = true
			break
		}
		b.WriteString(line)
	}
	return b.String(), more
}
