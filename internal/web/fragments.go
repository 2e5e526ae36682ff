package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tressa-sh/tressa/internal/render"
)

// lineFragment is the response of the window fragment endpoint: one
// highlighted window of a long snippet, positioned by pixel offset.
type lineFragment struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	TotalLines int    `json:"total_lines"`
	OffsetY    int    `json:"offset_y"`
	HTML       string `json:"html"`
}

// handleLineFragment serves the windowed code viewer. The client reports its
// scroll offset and viewport height; the server answers with the visible
// window plus buffer, highlighted and ready to translate into place.
func (s *Server) handleLineFragment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	scrollTop, _ := strconv.Atoi(q.Get("scroll_top"))
	viewHeight, _ := strconv.Atoi(q.Get("view_height"))
	if viewHeight <= 0 {
		viewHeight = 600
	}
	buffer, _ := strconv.Atoi(q.Get("buffer"))
	if buffer <= 0 {
		buffer = 15
	}

	v := viewerFrom(r)
	tress, err := s.apiFor(v).GetTress(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	lines := strings.Split(tress.Content, "\n")
	win := render.Window(len(lines), scrollTop, viewHeight, render.DefaultLineHeight, buffer)

	html, err := render.HighlightLines(
		strings.Join(win.Slice(lines), "\n"),
		tress.Language,
		render.CodeOptions{
			Dark:        s.cfg.Dark,
			LineNumbers: s.cfg.LineNumbers,
			StartLine:   win.Start + 1,
		},
	)
	if err != nil {
		http.Error(w, `{"error":"highlighting failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lineFragment{
		Start:      win.Start,
		End:        win.End,
		TotalLines: len(lines),
		OffsetY:    win.OffsetY,
		HTML:       string(html),
	})
}
