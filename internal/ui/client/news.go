package client

import (
	"context"
	"fmt"
	"net/url"
)

type NewsArticle struct {
	ID       int    `json:"id" example:"1"`
	Title    string `json:"title"`
	Category string `json:"category" example:"政策法规"`
	Date     string `json:"date" example:"2024-12-01"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
}

// GetNews lists news articles, an empty category means all of them
func (c *Client) GetNews(ctx context.Context, category string) ([]NewsArticle, error) {
	q := url.Values{}
	q.Set("category", category)

	var res envelope[[]NewsArticle]
	if err := c.get(ctx, "/news", q, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) GetNewsDetail(ctx context.Context, id int) (*NewsArticle, error) {
	var res envelope[NewsArticle]
	if err := c.get(ctx, fmt.Sprintf("/news/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}
