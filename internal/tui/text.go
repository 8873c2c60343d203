package tui

import (
	"strings"
	"unicode/utf8"

	strip "github.com/grokify/html-strip-tags-go"
	"github.com/mattn/go-runewidth"
)

// plainText drops markup so server content renders as terminal text.
func plainText(s string) string {
	return strings.TrimSpace(strip.StripTags(s))
}

// wrapByWidth word-wraps s to lines of at most width display cells. Words wider
// than width are split.
func wrapByWidth(s string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line string
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
			}

			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func indent(lines []string, prefix string) string {
	return prefix + strings.Join(lines, "\n"+prefix)
}
