package client

import (
	"bytes"
	"context"
	"encoding/json"
)

// Count is a figure the API reports either as a number or as display text such as "90000+"
type Count string

func (c *Count) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Count(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Count(n.String())
	return nil
}

type Stats struct {
	CategoryCount int   `json:"categoryCount" example:"4"`
	ItemCount     Count `json:"itemCount" example:"90000+"`
	NewsCount     int   `json:"newsCount" example:"10"`
	QuizCount     int   `json:"quizCount" example:"120"`
}

// GetStats fetches the platform summary figures
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var res envelope[Stats]
	if err := c.get(ctx, "/stats", nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}
