// Package render turns snippet content into HTML: chroma-highlighted code
// blocks, goldmark markdown, and the windowed rendering used for very long
// blocks.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	lightStyle = "github"
	darkStyle  = "monokai"
)

// CodeOptions controls how a code block is rendered.
type CodeOptions struct {
	Dark        bool // dark theme highlighting style
	LineNumbers bool
	StartLine   int  // first line number; 0 means 1
	Container   bool // wrap in the framed block with badge and copy affordance
}

// HighlightLines renders content as highlighted HTML without any container
// markup. Used directly by the window fragment endpoint.
func HighlightLines(content, language string, opts CodeOptions) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := lightStyle
	if opts.Dark {
		styleName = darkStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatterOpts := []chromahtml.Option{chromahtml.TabWidth(4)}
	if opts.LineNumbers {
		formatterOpts = append(formatterOpts, chromahtml.WithLineNumbers(true))
		if opts.StartLine > 0 {
			formatterOpts = append(formatterOpts, chromahtml.BaseLineNumber(opts.StartLine))
		}
	}
	formatter := chromahtml.New(formatterOpts...)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("tokenising %s content: %w", language, err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s content: %w", language, err)
	}
	return template.HTML(buf.String()), nil
}

// CodeBlock renders a full snippet as a single highlighted block. Blocks
// over VirtualizeThreshold lines render through the windowed variant when a
// container is requested; containerless (embedded) rendering always renders
// everything, matching the non-windowed fallback.
func CodeBlock(content, language string, opts CodeOptions) (template.HTML, error) {
	lines := strings.Split(content, "\n")
	if opts.Container && len(lines) > VirtualizeThreshold {
		return virtualizedBlock(lines, language, opts)
	}

	code, err := HighlightLines(content, language, opts)
	if err != nil {
		return "", err
	}
	if !opts.Container {
		return code, nil
	}
	return wrapContainer(code, language, strings.ToUpper(language)), nil
}

// virtualizedBlock emits the scroll container for a long block: the full
// height is reserved, only the first window is pre-rendered, and data
// attributes let the scroll handler fetch further windows.
func virtualizedBlock(lines []string, language string, opts CodeOptions) (template.HTML, error) {
	total := len(lines)
	win := Window(total, 0, 600, DefaultLineHeight, 15)

	winOpts := opts
	winOpts.Container = false
	winOpts.StartLine = win.Start + 1
	code, err := HighlightLines(strings.Join(win.Slice(lines), "\n"), language, winOpts)
	if err != nil {
		return "", err
	}

	inner := template.HTML(fmt.Sprintf(
		`<div class="code-viewport" data-total-lines="%d" data-line-height="%d" data-window-start="%d" data-window-end="%d">`+
			`<div class="code-spacer" style="height:%dpx">`+
			`<div class="code-window" style="transform:translateY(%dpx)">%s</div>`+
			`</div></div>`,
		total, DefaultLineHeight, win.Start, win.End,
		total*DefaultLineHeight, win.OffsetY, code))

	badge := fmt.Sprintf("%s (%d lines)", strings.ToUpper(language), total)
	return wrapContainer(inner, language, badge), nil
}

// wrapContainer adds the framed block chrome: language badge and the
// copy-to-clipboard affordance.
func wrapContainer(inner template.HTML, language, badge string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="code-block" data-language="%s">`+
			`<span class="code-lang-badge">%s</span>`+
			`<button class="code-copy" type="button" title="Copy code">Copy</button>`+
			`%s</div>`,
		template.HTMLEscapeString(language), template.HTMLEscapeString(badge), inner))
}
