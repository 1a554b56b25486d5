package client

import (
	"context"

	"github.com/ecosort/ecosort/internal/pending"
)

// Async issues the same requests as Client without blocking the caller.
// Each method returns as soon as the request has been started.
type Async struct {
	c *Client
}

func (c *Client) Async() *Async {
	return &Async{c: c}
}

func (a *Async) GetCategories(ctx context.Context) *pending.Result[[]Category] {
	return pending.Go(ctx, a.c.GetCategories)
}

func (a *Async) GetCategoryDetail(ctx context.Context, name string) *pending.Result[*CategoryDetail] {
	return pending.Go(ctx, bind(a.c.GetCategoryDetail, name))
}

func (a *Async) SearchGarbage(ctx context.Context, keyword string) *pending.Result[*SearchResult] {
	return pending.Go(ctx, bind(a.c.SearchGarbage, keyword))
}

func (a *Async) GetKnowledge(ctx context.Context, category string) *pending.Result[[]KnowledgeEntry] {
	return pending.Go(ctx, bind(a.c.GetKnowledge, category))
}

func (a *Async) GetKnowledgeDetail(ctx context.Context, id int) *pending.Result[*KnowledgeEntry] {
	return pending.Go(ctx, bind(a.c.GetKnowledgeDetail, id))
}

func (a *Async) GetNews(ctx context.Context, category string) *pending.Result[[]NewsArticle] {
	return pending.Go(ctx, bind(a.c.GetNews, category))
}

func (a *Async) GetNewsDetail(ctx context.Context, id int) *pending.Result[*NewsArticle] {
	return pending.Go(ctx, bind(a.c.GetNewsDetail, id))
}

func (a *Async) GetStats(ctx context.Context) *pending.Result[*Stats] {
	return pending.Go(ctx, a.c.GetStats)
}

func bind[A, T any](fn func(context.Context, A) (T, error), arg A) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return fn(ctx, arg)
	}
}
