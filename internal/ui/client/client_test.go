package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type recordedRequest struct {
	method    string
	path      string
	rawQuery  string
	query     url.Values
	requestID string
}

// recordingServer is a fake backend that remembers every request it receives
type recordingServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) *recordingServer {
	t.Helper()

	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.requests = append(rs.requests, recordedRequest{
			method:    r.Method,
			path:      r.URL.Path,
			rawQuery:  r.URL.RawQuery,
			query:     r.URL.Query(),
			requestID: r.Header.Get(RequestIDHeader),
		})
		rs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) recorded() []recordedRequest {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]recordedRequest(nil), rs.requests...)
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		wantPath  string
		wantQuery url.Values // nil means no query string at all
	}{
		{
			name: "list categories",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetCategories(ctx)
				return err
			},
			wantPath: "/api/categories",
		},
		{
			name: "category detail",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetCategoryDetail(ctx, "plastic")
				return err
			},
			wantPath: "/api/category/plastic",
		},
		{
			name: "search",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchGarbage(ctx, "bottle")
				return err
			},
			wantPath:  "/api/search",
			wantQuery: url.Values{"keyword": {"bottle"}},
		},
		{
			name: "knowledge without category sends empty filter",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetKnowledge(ctx, "")
				return err
			},
			wantPath:  "/api/knowledge",
			wantQuery: url.Values{"category": {""}},
		},
		{
			name: "knowledge with category",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetKnowledge(ctx, "基础知识")
				return err
			},
			wantPath:  "/api/knowledge",
			wantQuery: url.Values{"category": {"基础知识"}},
		},
		{
			name: "knowledge detail",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetKnowledgeDetail(ctx, 42)
				return err
			},
			wantPath: "/api/knowledge/42",
		},
		{
			name: "news without category sends empty filter",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetNews(ctx, "")
				return err
			},
			wantPath:  "/api/news",
			wantQuery: url.Values{"category": {""}},
		},
		{
			name: "news detail",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetNewsDetail(ctx, 3)
				return err
			},
			wantPath: "/api/news/3",
		},
		{
			name: "stats",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetStats(ctx)
				return err
			},
			wantPath: "/api/stats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRecordingServer(t, respondJSON(`{"success":true,"data":null}`))
			c := NewClient(srv.URL)

			if err := tt.call(context.Background(), c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			reqs := srv.recorded()
			if len(reqs) != 1 {
				t.Fatalf("got %d requests, want exactly 1", len(reqs))
			}
			got := reqs[0]

			if got.method != http.MethodGet {
				t.Errorf("method = %s, want GET", got.method)
			}
			if got.path != tt.wantPath {
				t.Errorf("path = %s, want %s", got.path, tt.wantPath)
			}
			if tt.wantQuery == nil {
				if got.rawQuery != "" {
					t.Errorf("query = %q, want none", got.rawQuery)
				}
			} else if !reflect.DeepEqual(got.query, tt.wantQuery) {
				t.Errorf("query = %v, want %v", got.query, tt.wantQuery)
			}
		})
	}
}

func TestKnowledgeEmptyCategoryIsNotOmitted(t *testing.T) {
	srv := newRecordingServer(t, respondJSON(`{"success":true,"data":[]}`))
	c := NewClient(srv.URL)

	if _, err := c.GetKnowledge(context.Background(), ""); err != nil {
		t.Fatalf("GetKnowledge() error: %v", err)
	}

	got := srv.recorded()[0]
	if got.rawQuery != "category=" {
		t.Errorf("raw query = %q, want %q", got.rawQuery, "category=")
	}
}

func TestDecodeResponses(t *testing.T) {
	t.Run("category detail", func(t *testing.T) {
		srv := newRecordingServer(t, respondJSON(`{"success":true,"data":{"name":"可回收物","color":"#3498db","icon":"♻️","items":[{"name":"塑料瓶","tips":"清空内容物，压扁投放"}]}}`))

		detail, err := NewClient(srv.URL).GetCategoryDetail(context.Background(), "可回收物")
		if err != nil {
			t.Fatalf("GetCategoryDetail() error: %v", err)
		}
		if detail.Name != "可回收物" || len(detail.Items) != 1 || detail.Items[0].Name != "塑料瓶" {
			t.Errorf("unexpected detail: %+v", detail)
		}
		if got := srv.recorded()[0].path; got != "/api/category/可回收物" {
			t.Errorf("path = %q, want /api/category/可回收物", got)
		}
	})

	t.Run("search carries count", func(t *testing.T) {
		srv := newRecordingServer(t, respondJSON(`{"success":true,"data":[{"name":"塑料瓶","category":"可回收物"},{"name":"饮料瓶","category":"可回收物"}],"count":2}`))

		res, err := NewClient(srv.URL).SearchGarbage(context.Background(), "瓶")
		if err != nil {
			t.Fatalf("SearchGarbage() error: %v", err)
		}
		if res.Count != 2 || len(res.Items) != 2 {
			t.Errorf("got count %d with %d items, want 2 and 2", res.Count, len(res.Items))
		}
	})

	tests := []struct {
		name          string
		body          string
		wantItemCount Count
	}{
		{"stats item count as text", `{"success":true,"data":{"categoryCount":4,"itemCount":"90000+","newsCount":10,"quizCount":7}}`, "90000+"},
		{"stats item count as number", `{"success":true,"data":{"categoryCount":4,"itemCount":49,"newsCount":10,"quizCount":7}}`, "49"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRecordingServer(t, respondJSON(tt.body))

			stats, err := NewClient(srv.URL).GetStats(context.Background())
			if err != nil {
				t.Fatalf("GetStats() error: %v", err)
			}
			if stats.ItemCount != tt.wantItemCount {
				t.Errorf("ItemCount = %q, want %q", stats.ItemCount, tt.wantItemCount)
			}
			if stats.CategoryCount != 4 || stats.QuizCount != 7 {
				t.Errorf("unexpected stats: %+v", stats)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	c := NewClient("http://backend.example:5000/")

	if c.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", c.Timeout())
	}
	if c.BaseURL() != "http://backend.example:5000/api" {
		t.Errorf("BaseURL() = %q, want http://backend.example:5000/api", c.BaseURL())
	}
}

func TestTimeout(t *testing.T) {
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.GetStats(context.Background())
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if time.Since(start) > time.Second {
		t.Errorf("request took %v, the timeout was not enforced", time.Since(start))
	}

	if !errors.Is(err, ErrTimeout) {
		t.Errorf("errors.Is(err, ErrTimeout) = false, err = %v", err)
	}
	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrHTTPStatus) {
		t.Errorf("timeout also matched another error kind: %v", err)
	}

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("error is not a *ClientError: %T", err)
	}
	if ce.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", ce.StatusCode)
	}
}

func TestHTTPStatusError(t *testing.T) {
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"分类不存在"}`))
	})

	_, err := NewClient(srv.URL).GetCategoryDetail(context.Background(), "glass")
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("errors.Is(err, ErrHTTPStatus) = false, err = %v", err)
	}

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("error is not a *ClientError: %T", err)
	}
	if ce.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", ce.StatusCode)
	}
	if string(ce.Body) != `{"success":false,"message":"分类不存在"}` {
		t.Errorf("Body = %q", ce.Body)
	}
	if ce.UserError() != "分类不存在" {
		t.Errorf("UserError() = %q, want server message", ce.UserError())
	}
	if len(srv.recorded()) != 1 {
		t.Errorf("got %d requests, want 1 (no retries)", len(srv.recorded()))
	}
}

func TestNonOKSuccessStatus(t *testing.T) {
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	if _, err := NewClient(srv.URL).GetNews(context.Background(), ""); err != nil {
		t.Errorf("2xx response should succeed, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	_, err := NewClient(origin).GetCategories(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("errors.Is(err, ErrNetwork) = false, err = %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Errorf("connection failure reported as timeout: %v", err)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := newRecordingServer(t, respondJSON(`<html>not json</html>`))

	_, err := NewClient(srv.URL).GetCategories(context.Background())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("errors.Is(err, ErrInternal) = false, err = %v", err)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newRecordingServer(t, respondJSON(`{"success":true,"data":null}`))
	c := NewClient(srv.URL)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "page-request-1")
	if _, err := c.GetStats(ctx); err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if _, err := c.GetStats(context.Background()); err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}

	reqs := srv.recorded()
	if reqs[0].requestID != "page-request-1" {
		t.Errorf("forwarded request id = %q, want page-request-1", reqs[0].requestID)
	}
	if _, err := uuid.Parse(reqs[1].requestID); err != nil {
		t.Errorf("generated request id %q is not a uuid: %v", reqs[1].requestID, err)
	}
}

func TestAsync(t *testing.T) {
	srv := newRecordingServer(t, respondJSON(`{"success":true,"data":{"id":7,"title":"可降解塑料技术取得重大突破"}}`))
	a := NewClient(srv.URL).Async()
	ctx := context.Background()

	article, err := a.GetNewsDetail(ctx, 7).Await(ctx)
	if err != nil {
		t.Fatalf("Await() error: %v", err)
	}
	if article.ID != 7 {
		t.Errorf("ID = %d, want 7", article.ID)
	}
	if got := srv.recorded()[0].path; got != "/api/news/7" {
		t.Errorf("path = %s, want /api/news/7", got)
	}
}

func TestAsyncPropagatesErrors(t *testing.T) {
	srv := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()

	_, err := NewClient(srv.URL).Async().GetKnowledgeDetail(ctx, 1).Await(ctx)
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("errors.Is(err, ErrHTTPStatus) = false, err = %v", err)
	}
}
