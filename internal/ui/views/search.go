package views

import (
	"net/http"
	"strings"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/routes"
	"golang.org/x/text/unicode/norm"
)

type searchData struct {
	Keyword string
	Result  *client.SearchResult
}

func (s *Set) newSearch() (routes.View, error) {
	return s.newView(routes.Search, "分类查询", searchHTML, s.search)
}

// search only calls the api once a keyword has been entered
func (s *Set) search(r *http.Request, _ routes.Params) (any, error) {
	keyword := norm.NFC.String(strings.TrimSpace(r.URL.Query().Get("keyword")))
	if keyword == "" {
		return searchData{}, nil
	}

	result, err := s.api.SearchGarbage(r.Context(), keyword)
	if err != nil {
		return nil, err
	}
	return searchData{Keyword: keyword, Result: result}, nil
}

const searchHTML = `{{define "content"}}
<form method="get">
<input type="search" name="keyword" value="{{.Keyword}}" placeholder="输入垃圾名称">
<button type="submit">查询</button>
</form>
{{with .Result}}
<p>找到 {{.Count}} 个结果</p>
<ul class="results">
{{range .Items}}<li style="border-color: {{.Color}}">
<strong>{{.Name}}</strong> {{.Icon}} <a href="{{link "Category" "name" .Category}}">{{.Category}}</a>
{{if .Tips}}<p>{{.Tips}}</p>{{end}}
{{if .Contain}}<p>包含：{{.Contain}}</p>{{end}}
{{if .Tip}}<p>投放提示：{{.Tip}}</p>{{end}}
</li>
{{else}}<li>没有找到相关物品，换个关键词试试。</li>
{{end}}</ul>
{{end}}
{{end}}`
