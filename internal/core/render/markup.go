// Package render turns model output into the HTML shown in the panels.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/markdave123-py/Lectio/internal/core/prompt"
)

var (
	// markdown omits raw HTML from the model output.
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	// markup lets embedded HTML through; the questions panel relies on
	// <details> blocks for its collapsible answers.
	markup = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithUnsafe()),
	)
)

// Markdown renders src with raw HTML removed.
func Markdown(src string) (string, error) {
	return convert(markdown, src)
}

// Markup renders src and keeps embedded HTML.
func Markup(src string) (string, error) {
	return convert(markup, src)
}

// ForKind picks the renderer used by the panel that shows kind.
func ForKind(kind prompt.Kind, src string) (string, error) {
	if kind == prompt.KindQuestions {
		return Markup(src)
	}
	return Markdown(src)
}

// PlainText escapes extracted text for the Text panel, keeping line breaks.
func PlainText(src string) string {
	return "<pre>" + html.EscapeString(src) + "</pre>"
}

func convert(md goldmark.Markdown, src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
