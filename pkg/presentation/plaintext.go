package presentation

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "div": {},
	"footer": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"header": {}, "hr": {}, "li": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tr": {}, "ul": {},
}

// PlainText approximates the rendered text of markup: tags are dropped,
// entities decoded and whitespace collapsed within each line. Block elements
// are separated by blank lines and <br> starts a new line. Script and style
// contents are skipped.
func PlainText(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))

	var (
		blocks  []string
		lines   []string
		current strings.Builder
		skip    int
	)
	breakLine := func() {
		lines = append(lines, strings.Join(strings.Fields(current.String()), " "))
		current.Reset()
	}
	flush := func() {
		breakLine()
		start, end := 0, len(lines)
		for start < end && lines[start] == "" {
			start++
		}
		for end > start && lines[end-1] == "" {
			end--
		}
		if start < end {
			blocks = append(blocks, strings.Join(lines[start:end], "\n"))
		}
		lines = lines[:0]
	}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() != io.EOF {
				return strings.TrimSpace(markup)
			}
			flush()
			return strings.Join(blocks, "\n\n")
		case html.TextToken:
			if skip == 0 {
				current.Write(tokenizer.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			switch {
			case tag == "script" || tag == "style":
				skip++
			case tag == "br":
				if skip == 0 {
					breakLine()
				}
			default:
				if _, ok := blockElements[tag]; ok {
					flush()
				}
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if skip > 0 {
					skip--
				}
				continue
			}
			if _, ok := blockElements[tag]; ok {
				flush()
			}
		}
	}
}
