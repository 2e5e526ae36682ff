package web

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tressa-sh/tressa/internal/render"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// previewDebounce is how long the preview socket waits after the last edit
// before rendering. Each incoming edit cancels and reschedules the timer, so
// at most one render fires per edit burst.
const previewDebounce = 500 * time.Millisecond

// previewRequest is the incoming WebSocket message format.
type previewRequest struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

// previewResponse is the outgoing WebSocket message format.
type previewResponse struct {
	Type      string `json:"type"` // "preview" or "error"
	HTML      string `json:"html,omitempty"`
	SizeBytes int    `json:"size_bytes"`
	SizeCap   int    `json:"size_cap"`
	OverLimit bool   `json:"over_limit"`
	Error     string `json:"error,omitempty"`
}

// handlePreviewSocket renders live previews for the editor's preview tab.
func (s *Server) handlePreviewSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	v := viewerFrom(r)

	var mu sync.Mutex
	var timer *time.Timer
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket read: %v", err)
			}
			return
		}

		var req previewRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendPreviewError(conn, &mu, "invalid message format")
			continue
		}

		// Cancel-and-reschedule: only the last edit of a burst renders.
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(previewDebounce, func() {
			s.sendPreview(conn, &mu, v, req)
		})
		mu.Unlock()
	}
}

func (s *Server) sendPreview(conn *websocket.Conn, mu *sync.Mutex, v viewer, req previewRequest) {
	resp := previewResponse{
		Type:      "preview",
		SizeBytes: render.ContentSize(req.Content),
		SizeCap:   render.SizeCap(v.LoggedIn),
	}
	resp.OverLimit = resp.SizeBytes > resp.SizeCap

	var html template.HTML
	var err error
	if render.IsMarkdown(req.Language) {
		html, err = render.Markdown(req.Content, render.MarkdownOptions{
			Dark:        s.cfg.Dark,
			LineNumbers: s.cfg.LineNumbers,
		})
	} else {
		html, err = render.CodeBlock(req.Content, req.Language, render.CodeOptions{
			Dark:        s.cfg.Dark,
			LineNumbers: s.cfg.LineNumbers,
			Container:   true,
		})
	}
	if err != nil {
		resp.Type = "error"
		resp.Error = "failed to render preview"
	} else {
		resp.HTML = string(html)
	}

	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("web: websocket write: %v", err)
	}
}

func (s *Server) sendPreviewError(conn *websocket.Conn, mu *sync.Mutex, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(previewResponse{Type: "error", Error: msg}); err != nil {
		log.Printf("web: websocket write: %v", err)
	}
}
