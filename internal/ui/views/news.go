package views

import (
	"net/http"
	"strconv"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/routes"
)

type newsData struct {
	Category string
	Articles []client.NewsArticle
	Article  *client.NewsArticle
}

// newsCategories are the filters offered above the list
var newsCategories = []string{"政策法规", "环保科技", "环保行动"}

func (s *Set) newNews() (routes.View, error) {
	return s.newView(routes.News, "环保资讯", newsHTML, s.news)
}

func (s *Set) news(r *http.Request, _ routes.Params) (any, error) {
	q := r.URL.Query()

	if id, err := strconv.Atoi(q.Get("id")); err == nil {
		article, err := s.api.GetNewsDetail(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return newsData{Article: article}, nil
	}

	category := q.Get("category")
	articles, err := s.api.GetNews(r.Context(), category)
	if err != nil {
		return nil, err
	}
	return newsData{Category: category, Articles: articles}, nil
}

func (d newsData) Filters() []string {
	return newsCategories
}

const newsHTML = `{{define "content"}}
{{with .Article}}
<article>
<h2>{{.Title}}</h2>
<p class="meta">{{.Date}} {{.Source}} {{.Category}}</p>
<p>{{.Summary}}</p>
</article>
<p><a href="{{link "News"}}">返回列表</a></p>
{{else}}
<p class="filters"><a href="{{link "News"}}">全部</a>{{range .Filters}} <a href="{{link "News"}}?category={{.}}">{{.}}</a>{{end}}</p>
<ul class="news">
{{range .Articles}}<li>
<a href="{{link "News"}}?id={{.ID}}">{{.Title}}</a>
<p class="meta">{{.Date}} {{.Source}}</p>
<p>{{.Summary}}</p>
</li>
{{else}}<li>暂无资讯</li>
{{end}}</ul>
{{end}}
{{end}}`
