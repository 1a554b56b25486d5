package views

import (
	"net/http"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/routes"
)

type homeData struct {
	Categories []client.Category
	Stats      *client.Stats
}

func (s *Set) newHome() (routes.View, error) {
	return s.newView(routes.Home, "垃圾分类科普平台", homeHTML, s.home)
}

// home fetches the categories and the stats concurrently
func (s *Set) home(r *http.Request, _ routes.Params) (any, error) {
	ctx := r.Context()
	async := s.api.Async()

	categories := async.GetCategories(ctx)
	stats := async.GetStats(ctx)

	var data homeData
	var err error
	if data.Categories, err = categories.Await(ctx); err != nil {
		return nil, err
	}
	if data.Stats, err = stats.Await(ctx); err != nil {
		return nil, err
	}
	return data, nil
}

const homeHTML = `{{define "content"}}
<section class="stats">
<span>{{.Stats.CategoryCount}} 个分类</span>
<span>{{.Stats.ItemCount}} 种物品</span>
<span>{{.Stats.NewsCount}} 条资讯</span>
<span>{{.Stats.QuizCount}} 道题目</span>
</section>
<form action="{{link "Search"}}" method="get">
<input type="search" name="keyword" placeholder="输入垃圾名称，例如：塑料瓶">
<button type="submit">查询</button>
</form>
<section class="categories">
{{range .Categories}}<a class="category" href="{{link "Category" "name" .Name}}" style="border-color: {{.Color}}">
<h2>{{.Icon}} {{.Name}}</h2>
<p>{{.Description}}</p>
<small>{{.ItemCount}} 种常见物品</small>
</a>
{{end}}</section>
{{end}}`
