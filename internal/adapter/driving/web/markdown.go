package web

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)

	// Activity entries are one-liners: inline formatting only, no block markup.
	htmlSanitizer = bluemonday.NewPolicy()
	htmlSanitizer.AllowElements("strong", "em", "code", "del")
	htmlSanitizer.AllowStandardURLs()
	htmlSanitizer.AllowAttrs("href").OnElements("a")
	htmlSanitizer.RequireNoFollowOnLinks(true)
}

// RenderMarkdown converts a single-line markdown snippet to sanitized inline HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return htmlSanitizer.Sanitize(src)
	}

	return strings.TrimSpace(htmlSanitizer.Sanitize(buf.String()))
}
