package client

import (
	"context"
	"fmt"
	"net/url"
)

type KnowledgeEntry struct {
	ID       int      `json:"id" example:"1"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Source   string   `json:"source,omitempty"`
	URL      string   `json:"url,omitempty"`
	Time     string   `json:"time,omitempty"`
	ImgURL   string   `json:"imgUrl,omitempty"`
}

// GetKnowledge lists knowledge entries.
// An empty category is still sent (category=) and means no filter.
func (c *Client) GetKnowledge(ctx context.Context, category string) ([]KnowledgeEntry, error) {
	q := url.Values{}
	q.Set("category", category)

	var res envelope[[]KnowledgeEntry]
	if err := c.get(ctx, "/knowledge", q, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) GetKnowledgeDetail(ctx context.Context, id int) (*KnowledgeEntry, error) {
	var res envelope[KnowledgeEntry]
	if err := c.get(ctx, fmt.Sprintf("/knowledge/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}
