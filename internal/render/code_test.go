package render

import (
	"fmt"
	"strings"
	"testing"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("x%d := %d", i, i)
	}
	return strings.Join(lines, "\n")
}

func TestHighlightLinesProducesMarkup(t *testing.T) {
	out, err := HighlightLines("package main\n\nfunc main() {}\n", "go", CodeOptions{})
	if err != nil {
		t.Fatalf("HighlightLines: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "main") {
		t.Error("output should contain the source text")
	}
	if !strings.Contains(html, "<") {
		t.Error("output should be HTML markup, not plain text")
	}
}

func TestHighlightLinesUnknownLanguageFallsBack(t *testing.T) {
	out, err := HighlightLines("whatever content", "no-such-language", CodeOptions{})
	if err != nil {
		t.Fatalf("HighlightLines: %v", err)
	}
	if !strings.Contains(string(out), "whatever content") {
		t.Error("fallback lexer should still emit the content")
	}
}

func TestCodeBlockShortStaysDirect(t *testing.T) {
	out, err := CodeBlock(numberedLines(50), "go", CodeOptions{Container: true})
	if err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "code-viewport") {
		t.Error("50-line block must not use the windowed path")
	}
	if !strings.Contains(html, `class="code-block"`) {
		t.Error("container rendering should include the block frame")
	}
	if !strings.Contains(html, "x49 := 49") {
		t.Error("all lines should be rendered")
	}
}

func TestCodeBlockAtThresholdStaysDirect(t *testing.T) {
	out, err := CodeBlock(numberedLines(VirtualizeThreshold), "go", CodeOptions{Container: true})
	if err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	if strings.Contains(string(out), "code-viewport") {
		t.Errorf("exactly %d lines must not trigger windowing", VirtualizeThreshold)
	}
}

func TestCodeBlockLongGetsWindowed(t *testing.T) {
	out, err := CodeBlock(numberedLines(150), "go", CodeOptions{Container: true})
	if err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"code-viewport",
		`data-total-lines="150"`,
		fmt.Sprintf(`data-line-height="%d"`, DefaultLineHeight),
		`data-window-start="0"`,
		fmt.Sprintf(`style="height:%dpx"`, 150*DefaultLineHeight),
	} {
		if !strings.Contains(html, want) {
			t.Errorf("windowed block missing %q", want)
		}
	}
	if !strings.Contains(html, "x0 := 0") {
		t.Error("first window should be pre-rendered")
	}
	if strings.Contains(html, "x149 := 149") {
		t.Error("lines past the first window must not be pre-rendered")
	}
}

func TestCodeBlockContainerlessNeverWindows(t *testing.T) {
	out, err := CodeBlock(numberedLines(150), "go", CodeOptions{})
	if err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "code-viewport") || strings.Contains(html, "code-block") {
		t.Error("containerless rendering must emit bare highlighted HTML")
	}
	if !strings.Contains(html, "x149 := 149") {
		t.Error("containerless rendering must include every line")
	}
}

func TestWrapContainerEscapesLanguage(t *testing.T) {
	out, err := CodeBlock("x", `"><script>`, CodeOptions{Container: true})
	if err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Error("language tag must be escaped in container markup")
	}
}
