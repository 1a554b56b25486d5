// Package views implements the pages of the ecosort UI.
//
// A Set provides the deferred loader for every route in the route table. Loading a view parses its
// templates, rendering it calls the backend API through the client and returns a templ.Component.
package views

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/ecosort/ecosort/internal/pending"
	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/routes"
)

// Linker builds paths for named routes
type Linker interface {
	URL(name string, params routes.Params) (string, error)
}

// Set holds what the views share: the api client and the route table used for links
type Set struct {
	api   *client.Client
	links Linker

	errorPage func() (*template.Template, error)
}

func NewSet(api *client.Client) *Set {
	s := &Set{api: api}
	s.errorPage = sync.OnceValues(func() (*template.Template, error) {
		return s.parse("error", errorHTML)
	})
	return s
}

// Table builds the default route table for this set and uses it for links between pages
func (s *Set) Table(opts ...routes.Option) (*routes.Table, error) {
	table, err := routes.Default(s, opts...)
	if err != nil {
		return nil, err
	}
	s.links = table
	return table, nil
}

// Loader returns the deferred loader for the named route
func (s *Set) Loader(name string) routes.Loader {
	build, ok := s.builders()[name]

	return func(ctx context.Context) *pending.Result[routes.View] {
		return pending.Go(ctx, func(ctx context.Context) (routes.View, error) {
			if !ok {
				return nil, fmt.Errorf("no view for route %s", name)
			}
			return build()
		})
	}
}

func (s *Set) builders() map[string]func() (routes.View, error) {
	return map[string]func() (routes.View, error){
		routes.Home:       s.newHome,
		routes.Search:     s.newSearch,
		routes.Category:   s.newCategory,
		routes.Knowledge:  s.newKnowledge,
		routes.Guide:      s.newGuide,
		routes.News:       s.newNews,
		routes.Quiz:       s.newQuiz,
		routes.Feedback:   s.newFeedback,
		routes.NearbyBins: s.newNearbyBins,
		routes.NotFound:   s.newNotFound,
	}
}

// ErrorPage renders message in the site layout, used when a view cannot produce its page
func (s *Set) ErrorPage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, err := s.errorPage()
		if err != nil {
			return err
		}
		return tmpl.ExecuteTemplate(w, "layout", s.newPage("", "出错了", message))
	})
}

// view is a loaded page: parsed templates plus the function that gathers its data
type view struct {
	set     *Set
	route   string
	title   string
	tmpl    *template.Template
	prepare func(r *http.Request, params routes.Params) (any, error)
}

func (v *view) Page(r *http.Request, params routes.Params) (templ.Component, error) {
	var data any
	if v.prepare != nil {
		var err error
		if data, err = v.prepare(r, params); err != nil {
			return nil, err
		}
	}

	p := v.set.newPage(v.route, v.title, data)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return v.tmpl.ExecuteTemplate(w, "layout", p)
	}), nil
}

func (s *Set) newView(route, title, content string, prepare func(r *http.Request, params routes.Params) (any, error)) (routes.View, error) {
	tmpl, err := s.parse(route, content)
	if err != nil {
		return nil, err
	}
	return &view{set: s, route: route, title: title, tmpl: tmpl, prepare: prepare}, nil
}

func (s *Set) parse(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{"link": s.link}).Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing layout for %s: %w", name, err)
	}
	if _, err := tmpl.Parse(content); err != nil {
		return nil, fmt.Errorf("parsing %s view: %w", name, err)
	}
	return tmpl, nil
}

// link is available to templates as {{link "Category" "name" .Name}}
func (s *Set) link(name string, kv ...string) string {
	if s.links == nil {
		return "/"
	}
	params := routes.Params{}
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = kv[i+1]
	}
	path, err := s.links.URL(name, params)
	if err != nil {
		return "/"
	}
	return path
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type page struct {
	Title string
	Nav   []navLink
	Data  any
}

// navOrder is the menu, Category pages are reached from Home and Search
var navOrder = []struct {
	route string
	label string
}{
	{routes.Home, "首页"},
	{routes.Search, "分类查询"},
	{routes.Knowledge, "科普知识"},
	{routes.Guide, "分类指南"},
	{routes.News, "环保资讯"},
	{routes.Quiz, "知识答题"},
	{routes.Feedback, "纠错反馈"},
	{routes.NearbyBins, "附近垃圾站"},
}

func (s *Set) newPage(active, title string, data any) page {
	nav := make([]navLink, 0, len(navOrder))
	for _, n := range navOrder {
		nav = append(nav, navLink{Label: n.label, Href: s.link(n.route), Active: n.route == active})
	}
	return page{Title: title, Nav: nav, Data: data}
}

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - 垃圾分类科普平台</title>
</head>
<body>
<nav>{{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a> {{end}}</nav>
<main>
<h1>{{.Title}}</h1>
{{template "content" .Data}}
</main>
</body>
</html>
{{end}}`

const errorHTML = `{{define "content"}}<p class="error">{{.}}</p>
<p><a href="{{link "Home"}}">返回首页</a></p>{{end}}`
