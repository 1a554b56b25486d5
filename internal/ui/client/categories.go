package client

import (
	"context"
	"fmt"
)

// Category is a waste bin category as listed by the API
type Category struct {
	Name        string `json:"name" example:"可回收物"`
	Description string `json:"description"`
	Color       string `json:"color" example:"#3498db"`
	Icon        string `json:"icon"`
	ItemCount   int    `json:"itemCount" example:"15"`
}

// Item is an example of waste belonging to a category, with disposal advice
type Item struct {
	Name string `json:"name"`
	Tips string `json:"tips"`
}

type CategoryDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Items       []Item `json:"items"`
}

// GetCategories lists all waste categories
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var res envelope[[]Category]
	if err := c.get(ctx, "/categories", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetCategoryDetail fetches one category by name.
// The name is placed in the path as given.
func (c *Client) GetCategoryDetail(ctx context.Context, name string) (*CategoryDetail, error) {
	var res envelope[CategoryDetail]
	if err := c.get(ctx, fmt.Sprintf("/category/%s", name), nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}
