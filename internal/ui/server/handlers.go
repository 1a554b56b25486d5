package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ecosort/ecosort/internal/logger"
	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/version"
)

const genericErrorMessage = "页面加载失败，请稍后重试"

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

// handleNavigate resolves the request path against the route table, loads the route's view on first use and renders it.
// Paths that match no route are served by the not found view with a 404.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)

	match, found := s.table.Resolve(r.URL.EscapedPath())
	route := match.Route.Name

	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	logger.ContextWithLogAttrs(ctx, slog.String("route", route))

	var page templ.Component
	view, err := s.table.Load(ctx, match.Route)
	if err == nil {
		page, err = view.Page(r, match.Params)
	}
	if err != nil {
		var message string
		status, message = errorStatus(err)

		reqLogger.Error("Failed to prepare page",
			slog.String("route", route),
			slog.String("error", err.Error()),
		)
		logger.ContextWithLogAttrs(ctx, slog.String("error", err.Error()))
		page = s.pages.ErrorPage(message)
	}

	// render before writing so the status can still change when the template fails
	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		reqLogger.Error("Failed to render page",
			slog.String("route", route),
			slog.String("error", err.Error()),
		)
		status = http.StatusInternalServerError
		http.Error(w, http.StatusText(status), status)
		s.observePageView(route, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
	s.observePageView(route, status)
}

// errorStatus maps a view failure to the response status and the message shown to the user
func errorStatus(err error) (int, string) {
	var clientErr *client.ClientError
	switch {
	case errors.Is(err, client.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		if errors.As(err, &clientErr) {
			return http.StatusGatewayTimeout, clientErr.UserError()
		}
		return http.StatusGatewayTimeout, genericErrorMessage
	case errors.As(err, &clientErr):
		if clientErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, clientErr.UserError()
		}
		return http.StatusBadGateway, clientErr.UserError()
	default:
		return http.StatusInternalServerError, genericErrorMessage
	}
}

func (s *Server) observePageView(route string, status int) {
	if s.metrics != nil {
		s.metrics.ObservePageView(route, status)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
