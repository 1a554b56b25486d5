package views

import (
	"net/http"
	"strconv"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/routes"
)

type knowledgeData struct {
	Category string
	Entries  []client.KnowledgeEntry
	Entry    *client.KnowledgeEntry
}

func (s *Set) newKnowledge() (routes.View, error) {
	return s.newView(routes.Knowledge, "科普知识", knowledgeHTML, s.knowledge)
}

// knowledge shows one entry when ?id= is a valid id, the (optionally filtered) list otherwise
func (s *Set) knowledge(r *http.Request, _ routes.Params) (any, error) {
	q := r.URL.Query()

	if id, err := strconv.Atoi(q.Get("id")); err == nil {
		entry, err := s.api.GetKnowledgeDetail(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return knowledgeData{Entry: entry}, nil
	}

	category := q.Get("category")
	entries, err := s.api.GetKnowledge(r.Context(), category)
	if err != nil {
		return nil, err
	}
	return knowledgeData{Category: category, Entries: entries}, nil
}

const knowledgeHTML = `{{define "content"}}
{{with .Entry}}
<article>
<h2>{{.Title}}</h2>
<p class="meta">{{.Category}}{{range .Tags}} #{{.}}{{end}}</p>
<p>{{.Content}}</p>
{{if .URL}}<p><a href="{{.URL}}" rel="noopener">原文</a>{{if .Source}} 来源：{{.Source}}{{end}}</p>{{end}}
</article>
<p><a href="{{link "Knowledge"}}">返回列表</a></p>
{{else}}
{{if .Category}}<p>分类：{{.Category}} <a href="{{link "Knowledge"}}">查看全部</a></p>{{end}}
<ul class="knowledge">
{{range .Entries}}<li>
<a href="{{link "Knowledge"}}?id={{.ID}}">{{.Title}}</a>
<p>{{.Content}}</p>
</li>
{{else}}<li>暂无内容</li>
{{end}}</ul>
{{end}}
{{end}}`
