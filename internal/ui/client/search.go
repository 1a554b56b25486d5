package client

import (
	"context"
	"net/url"
)

// SearchItem is a single match returned by a search
type SearchItem struct {
	Name     string `json:"name" example:"塑料瓶"`
	Category string `json:"category" example:"可回收物"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Tips     string `json:"tips"`
	Contain  string `json:"contain,omitempty"`
	Tip      string `json:"tip,omitempty"`
}

type SearchResult struct {
	Items []SearchItem `json:"items"`
	Count int          `json:"count"`
}

// SearchGarbage looks up which category a piece of waste belongs to
func (c *Client) SearchGarbage(ctx context.Context, keyword string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("keyword", keyword)

	var res envelope[[]SearchItem]
	if err := c.get(ctx, "/search", q, &res); err != nil {
		return nil, err
	}
	return &SearchResult{Items: res.Data, Count: res.Count}, nil
}
