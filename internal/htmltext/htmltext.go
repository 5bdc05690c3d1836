// htmltext.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

// Package htmltext converts editor-produced HTML fragments to plain text.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip returns the text content of an HTML fragment. Block-level closings
// become newlines so note paragraphs stay readable in plain-text output.
func Strip(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; either way, return what we have.
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "p", "div", "li", "br", "h1", "h2", "h3", "h4", "ul", "ol":
				b.WriteByte('\n')
			}
		case html.SelfClosingTagToken, html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}

// IsEmpty reports whether an HTML fragment has no text content. The note form
// posts "<p></p>" for an untouched editor.
func IsEmpty(fragment string) bool {
	return Strip(fragment) == ""
}
