package views

import (
	"net/http"

	"github.com/ecosort/ecosort/internal/ui/routes"
)

func (s *Set) newCategory() (routes.View, error) {
	return s.newView(routes.Category, "分类详情", categoryHTML, s.category)
}

func (s *Set) category(r *http.Request, params routes.Params) (any, error) {
	return s.api.GetCategoryDetail(r.Context(), params.Get("name"))
}

const categoryHTML = `{{define "content"}}
<section class="category-detail" style="border-color: {{.Color}}">
<h2>{{.Icon}} {{.Name}}</h2>
<p>{{.Description}}</p>
<table>
<thead><tr><th>物品</th><th>投放建议</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Tips}}</td></tr>
{{end}}</tbody>
</table>
</section>
{{end}}`
