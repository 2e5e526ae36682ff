package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateTress submits a new snippet. When anonymous is true no bearer token
// is attached, creating an ownerless snippet.
func (c *Client) CreateTress(ctx context.Context, req CreateTressRequest, anonymous bool) (*Tress, error) {
	var out Tress
	err := c.do(ctx, "/tress/", requestOptions{
		method:    http.MethodPost,
		jsonBody:  req,
		needsAuth: !anonymous,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTress fetches a full snippet by id. The token is attached when present
// so private snippets resolve for their owner.
func (c *Client) GetTress(ctx context.Context, id int) (*Tress, error) {
	var out Tress
	err := c.do(ctx, fmt.Sprintf("/tress/%d", id), requestOptions{needsAuth: true}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTress removes a snippet. Ownership is enforced server-side; the
// backend answers 204 on success.
func (c *Client) DeleteTress(ctx context.Context, id int) error {
	return c.do(ctx, fmt.Sprintf("/tress/%d", id), requestOptions{
		method:    http.MethodDelete,
		needsAuth: true,
	}, nil)
}

// PublicTresses is the legacy unpaginated public listing, superseded by
// PublicPages but still served by the backend.
func (c *Client) PublicTresses(ctx context.Context) ([]Tress, error) {
	var out []Tress
	if err := c.do(ctx, "/tress/", requestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyTresses is the legacy unpaginated listing of the caller's snippets.
func (c *Client) MyTresses(ctx context.Context) ([]Tress, error) {
	var out []Tress
	if err := c.do(ctx, "/tress/my", requestOptions{needsAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicPages fetches one page of the public listing.
func (c *Client) PublicPages(ctx context.Context, page, pageSize int) (*PageResponse, error) {
	var out PageResponse
	endpoint := fmt.Sprintf("/tress/public/pages?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, endpoint, requestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPages fetches one page of the caller's own snippets.
func (c *Client) MyPages(ctx context.Context, page, pageSize int) (*PageResponse, error) {
	var out PageResponse
	endpoint := fmt.Sprintf("/tress/my/pages?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, endpoint, requestOptions{needsAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
