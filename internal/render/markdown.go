package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdown builds the goldmark pipeline: GFM tables, highlighted fenced
// code, auto heading IDs, and raw HTML passthrough. Math delimiters are left
// untouched in the output for client-side KaTeX to typeset.
func newMarkdown(dark bool) goldmark.Markdown {
	style := lightStyle
	if dark {
		style = darkStyle
	}
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// MarkdownOptions controls markdown rendering.
type MarkdownOptions struct {
	Dark        bool
	LineNumbers bool
}

// Markdown renders snippet content as HTML. Fenced code blocks whose line
// count exceeds VirtualizeThreshold are lifted out of the document before
// parsing and rendered through the windowed code block; everything else goes
// through goldmark.
func Markdown(content string, opts MarkdownOptions) (template.HTML, error) {
	md := newMarkdown(opts.Dark)
	segments := splitLongFences(content)

	var out strings.Builder
	for _, seg := range segments {
		if seg.code {
			block, err := CodeBlock(seg.body, seg.language, CodeOptions{
				Dark:        opts.Dark,
				LineNumbers: opts.LineNumbers,
				Container:   true,
			})
			if err != nil {
				return "", err
			}
			out.WriteString(string(block))
			continue
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(seg.body), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		out.Write(buf.Bytes())
	}
	return template.HTML(out.String()), nil
}

// IsMarkdown reports whether a language tag selects the markdown renderer.
func IsMarkdown(language string) bool {
	switch strings.ToLower(language) {
	case "markdown", "md":
		return true
	}
	return false
}

// segment is a stretch of the document: either plain markdown or the body of
// a long fenced code block.
type segment struct {
	body     string
	code     bool
	language string
}

// splitLongFences cuts fenced code blocks longer than VirtualizeThreshold
// out of the markdown source so they can be rendered through the windowed
// path. Short fences stay in place for goldmark's highlighter.
func splitLongFences(content string) []segment {
	lines := strings.Split(content, "\n")
	var segs []segment
	var plain []string

	flushPlain := func() {
		if len(plain) > 0 {
			segs = append(segs, segment{body: strings.Join(plain, "\n")})
			plain = nil
		}
	}

	for i := 0; i < len(lines); {
		marker, info, ok := fenceOpen(lines[i])
		if !ok {
			plain = append(plain, lines[i])
			i++
			continue
		}

		// Find the closing fence.
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == marker {
				end = j
				break
			}
		}
		if end == -1 {
			// Unterminated fence; leave it to goldmark.
			plain = append(plain, lines[i:]...)
			break
		}

		body := lines[i+1 : end]
		if len(body) > VirtualizeThreshold {
			flushPlain()
			lang := info
			if lang == "" {
				lang = "text"
			}
			segs = append(segs, segment{
				body:     strings.Join(body, "\n"),
				code:     true,
				language: lang,
			})
		} else {
			plain = append(plain, lines[i:end+1]...)
		}
		i = end + 1
	}
	flushPlain()
	return segs
}

// fenceOpen parses a fence opening line, returning the closing marker and
// the info-string language tag.
func fenceOpen(line string) (marker, language string, ok bool) {
	trimmed := strings.TrimSpace(line)
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, m) {
			info := strings.TrimSpace(strings.TrimPrefix(trimmed, m))
			if strings.ContainsAny(info, "`~") {
				return "", "", false
			}
			if f := strings.Fields(info); len(f) > 0 {
				info = f[0]
			}
			return m, info, true
		}
	}
	return "", "", false
}
