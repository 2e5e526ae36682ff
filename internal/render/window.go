package render

// VirtualizeThreshold is the line count above which a code block is rendered
// through the windowed path instead of highlighting everything at once.
const VirtualizeThreshold = 100

// DefaultLineHeight is the estimated pixel height of one rendered line. Real
// line heights vary with wrapping; this is a documented approximation.
const DefaultLineHeight = 24

// LineWindow is a contiguous half-open range of lines [Start, End) plus the
// pixel offset at which the window is positioned inside the full block.
type LineWindow struct {
	Start   int
	End     int
	OffsetY int
}

// Window computes the visible line window for a block of total lines given
// the scroll offset and viewport height. The window covers the visible lines
// plus buffer lines on each side, clamped to [0, total).
func Window(total, scrollTop, viewHeight, lineHeight, buffer int) LineWindow {
	if total <= 0 {
		return LineWindow{}
	}
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	visible := viewHeight / lineHeight
	if viewHeight%lineHeight != 0 {
		visible++
	}

	start := scrollTop/lineHeight - buffer
	if start < 0 {
		start = 0
	}
	end := start + visible + 2*buffer
	if end > total {
		end = total
	}

	return LineWindow{Start: start, End: end, OffsetY: start * lineHeight}
}

// Slice returns the lines covered by the window.
func (w LineWindow) Slice(lines []string) []string {
	if w.Start >= len(lines) || w.Start >= w.End {
		return nil
	}
	end := w.End
	if end > len(lines) {
		end = len(lines)
	}
	return lines[w.Start:end]
}

// Len returns the number of lines in the window.
func (w LineWindow) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}
