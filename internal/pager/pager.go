// Package pager implements the paginated list fetcher used by the home and
// profile pages: it loads one page of snippet previews at a time and keeps
// the last successful page visible across failed navigations.
package pager

import (
	"context"
	"sync"

	"github.com/tressa-sh/tressa/internal/api"
)

// Endpoint selects which paginated listing the pager reads.
type Endpoint string

const (
	Public Endpoint = "public" // all public snippets
	Mine   Endpoint = "my"     // the authenticated user's snippets
)

// Pager fetches pages of snippet previews from one logical endpoint.
// Concurrent LoadPage calls are serialized, not queued or cancelled; the last
// writer wins.
type Pager struct {
	client *api.Client

	mu         sync.Mutex
	endpoint   Endpoint
	pageSize   int
	items      []api.TressPreview
	pagination *api.PaginationInfo
	page       int
	loading    bool
	lastErr    string
	loaded     bool
}

// New creates a Pager reading from the given endpoint with the given page
// size. Nothing is fetched until EnsureLoaded or LoadPage is called.
func New(client *api.Client, endpoint Endpoint, pageSize int) *Pager {
	return &Pager{
		client:   client,
		endpoint: endpoint,
		pageSize: pageSize,
		page:     1,
	}
}

// LoadPage fetches the given page. Page numbers below 1 are a no-op. On
// success items and pagination are replaced atomically and the current page
// advances; on failure the previous items stay untouched and the error is
// recorded for display.
func (p *Pager) LoadPage(ctx context.Context, page int) error {
	if page < 1 {
		return nil
	}

	p.mu.Lock()
	p.loading = true
	p.lastErr = ""
	endpoint, pageSize := p.endpoint, p.pageSize
	p.mu.Unlock()

	resp, err := p.fetch(ctx, endpoint, page, pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.lastErr = api.UserMessage(err)
		return err
	}
	p.items = resp.Items
	p.pagination = &resp.Pagination
	p.page = page
	p.loaded = true
	return nil
}

func (p *Pager) fetch(ctx context.Context, endpoint Endpoint, page, pageSize int) (*api.PageResponse, error) {
	if endpoint == Mine {
		return p.client.MyPages(ctx, page, pageSize)
	}
	return p.client.PublicPages(ctx, page, pageSize)
}

// Refresh reloads the current page.
func (p *Pager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	return p.LoadPage(ctx, page)
}

// EnsureLoaded fetches page 1 the first time it is called; later calls are
// no-ops until Reset. This is the auto-load guard.
func (p *Pager) EnsureLoaded(ctx context.Context) error {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()
	return p.LoadPage(ctx, 1)
}

// Reset switches the pager to a new endpoint and page size, clearing all
// loaded state so the next EnsureLoaded starts from page 1 again.
func (p *Pager) Reset(endpoint Endpoint, pageSize int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endpoint = endpoint
	p.pageSize = pageSize
	p.items = nil
	p.pagination = nil
	p.page = 1
	p.lastErr = ""
	p.loaded = false
}

// Items returns the currently loaded previews.
func (p *Pager) Items() []api.TressPreview {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// Pagination returns the metadata of the current page, or nil before the
// first successful load.
func (p *Pager) Pagination() *api.PaginationInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pagination
}

// Page returns the current page number.
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Loading reports whether a fetch is in flight.
func (p *Pager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the user-displayable message of the last failed load, or "".
func (p *Pager) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Endpoint returns the pager's current endpoint selector.
func (p *Pager) Endpoint() Endpoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.endpoint
}
