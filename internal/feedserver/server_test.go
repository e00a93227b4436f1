package feedserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/ifkeeper/keeper-commons-utils/component-base/auth"
	"github.com/ifkeeper/keeper-commons-utils/component-base/util/postid"
	"github.com/ifkeeper/keeper-commons-utils/internal/feed"
	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/options"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
	"github.com/ifkeeper/keeper-commons-utils/pkg/db"
	"github.com/ifkeeper/keeper-commons-utils/pkg/storage"
)

var (
	benchmark = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixedNow  = benchmark.Add(time.Hour)
)

type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	*apiServer
	mr *miniredis.Miniredis
}

func newTestOptions() *options.Options {
	opts := options.NewOptions()
	opts.ServerRunOptions.Mode = gin.TestMode
	opts.ServerRunOptions.EnableMetrics = false
	return opts
}

func newTestServer(t *testing.T, opts *options.Options) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := db.Open(sqlite.Open(dsn), &db.Options{MaxOpenConnections: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	store := feed.NewStore(gdb)
	require.NoError(t, store.Migrate())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	gen := postid.New(benchmark, postid.WithClock(func() time.Time { return fixedNow }), postid.WithLocation(time.UTC))
	srv := feed.NewService(gen,
		feed.NewSequenceAllocator(client, "feed:"),
		store,
		feed.NewWeekCache(client, "feed:week:"),
		nil,
		feed.WithUserTagLength(2),
		feed.WithNow(func() time.Time { return fixedNow }),
	)

	return &testServer{
		apiServer: newAPIServer(opts, srv, storage.NewMonitor(client, 10*time.Millisecond)),
		mr:        mr,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, header http.Header) (int, response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t, newTestOptions())

	status, resp := s.do(t, http.MethodPost, "/v1/posts", map[string]string{"userTag": "u1", "content": "hello"}, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, code.ErrSuccess, resp.Code)

	var created feed.Post
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "u12s001", created.PostID)

	status, resp = s.do(t, http.MethodGet, "/v1/posts/u12s001", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var got feed.Post
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "hello", got.Content)

	status, resp = s.do(t, http.MethodGet, "/v1/posts/u1zzz01", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, code.ErrRecordNotFound, resp.Code)

	status, resp = s.do(t, http.MethodGet, "/v1/users/u1/posts", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var latest []feed.Post
	require.NoError(t, json.Unmarshal(resp.Data, &latest))
	require.Len(t, latest, 1)

	from := fixedNow.Add(-time.Minute).Format(time.RFC3339)
	to := fixedNow.Add(time.Minute).Format(time.RFC3339)
	status, resp = s.do(t, http.MethodGet, "/v1/users/u1/posts?from="+from+"&to="+to+"&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var window []feed.Post
	require.NoError(t, json.Unmarshal(resp.Data, &window))
	require.Len(t, window, 1)
	assert.Equal(t, "u12s001", window[0].PostID)

	status, resp = s.do(t, http.MethodGet, "/v1/users/u1/week", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var week struct {
		WeekID string            `json:"weekID"`
		Posts  map[string]string `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &week))
	assert.Equal(t, "u10", week.WeekID)
	assert.Equal(t, map[string]string{"u12s001": "hello"}, week.Posts)
}

func TestPostBadRequests(t *testing.T) {
	s := newTestServer(t, newTestOptions())

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   int
	}{
		{"missing content", http.MethodPost, "/v1/posts", map[string]string{"userTag": "u1"}, http.StatusBadRequest, code.ErrBind},
		{"bad user tag", http.MethodPost, "/v1/posts", map[string]string{"userTag": "abc", "content": "x"}, http.StatusBadRequest, code.ErrInvalidArgument},
		{"to without from", http.MethodGet, "/v1/users/u1/posts?to=1704070800000", nil, http.StatusBadRequest, code.ErrInvalidArgument},
		{"bad time", http.MethodGet, "/v1/users/u1/posts?from=yesterday", nil, http.StatusBadRequest, code.ErrInvalidArgument},
		{"zero limit", http.MethodGet, "/v1/users/u1/posts?limit=0", nil, http.StatusOK, code.ErrSuccess},
		{"wildcard user tag", http.MethodGet, "/v1/users/a_/posts", nil, http.StatusBadRequest, code.ErrInvalidArgument},
		{"wildcard in new post", http.MethodPost, "/v1/posts", map[string]string{"userTag": "a%", "content": "x"}, http.StatusBadRequest, code.ErrInvalidArgument},
		{"large limit", http.MethodGet, "/v1/users/u1/posts?limit=500", nil, http.StatusOK, code.ErrSuccess},
		{"limit too large", http.MethodGet, "/v1/users/u1/posts?limit=5000", nil, http.StatusBadRequest, code.ErrBind},
		{"reversed window", http.MethodGet, "/v1/users/u1/posts?from=1704070800000&to=1704067200000", nil, http.StatusBadRequest, code.ErrInvalidArgument},
		{"no route", http.MethodGet, "/v2/anything", nil, http.StatusNotFound, code.ErrPageNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := s.do(t, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestIDRoutes(t *testing.T) {
	s := newTestServer(t, newTestOptions())

	status, resp := s.do(t, http.MethodGet, "/v1/ids/post?userTag=u1&seq=5", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"postID":"u12s005"}`, string(resp.Data))

	status, resp = s.do(t, http.MethodGet, "/v1/ids/week?userTag=u1", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"weekID":"u10"}`, string(resp.Data))

	status, resp = s.do(t, http.MethodGet, "/v1/ids/parse/u12s005", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var parsed postid.ID
	require.NoError(t, json.Unmarshal(resp.Data, &parsed))
	assert.Equal(t, "u1", parsed.UserTag)
	assert.Equal(t, 5, parsed.Seq)
	assert.True(t, fixedNow.Equal(parsed.Time))

	status, resp = s.do(t, http.MethodGet, "/v1/ids/post?userTag=u1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrBind, resp.Code)

	status, resp = s.do(t, http.MethodGet, "/v1/ids/post?userTag=u1&seq=100", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrBind, resp.Code)

	status, resp = s.do(t, http.MethodGet, "/v1/ids/parse/u1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, code.ErrDecodingFailed, resp.Code)
}

func TestSequenceExhaustion(t *testing.T) {
	s := newTestServer(t, newTestOptions())

	for i := 0; i < postid.MaxSeq; i++ {
		status, _ := s.do(t, http.MethodPost, "/v1/posts", map[string]string{"userTag": "u1", "content": "x"}, nil)
		require.Equal(t, http.StatusCreated, status)
	}
	status, resp := s.do(t, http.MethodPost, "/v1/posts", map[string]string{"userTag": "u1", "content": "x"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, code.ErrSequenceExhausted, resp.Code)
}

func TestAuthProtectsCreate(t *testing.T) {
	opts := newTestOptions()
	opts.JwtOptions.SecretID = "feed"
	opts.JwtOptions.SecretKey = "super-secret"
	s := newTestServer(t, opts)

	body := map[string]string{"userTag": "u1", "content": "hello"}
	status, resp := s.do(t, http.MethodPost, "/v1/posts", body, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, code.ErrMissingHeader, resp.Code)

	token, err := auth.Sign("feed", "super-secret", opts.JwtOptions.Issuer, opts.JwtOptions.Audience)
	require.NoError(t, err)
	status, _ = s.do(t, http.MethodPost, "/v1/posts", body, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = s.do(t, http.MethodGet, "/v1/posts/u12s001", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRateLimit(t *testing.T) {
	opts := newTestOptions()
	opts.ServerRunOptions.RateLimit = 0.001
	opts.ServerRunOptions.RateBurst = 2
	s := newTestServer(t, opts)

	for i := 0; i < 2; i++ {
		status, _ := s.do(t, http.MethodGet, "/version", nil, nil)
		assert.Equal(t, http.StatusOK, status)
	}
	status, resp := s.do(t, http.MethodGet, "/version", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, code.ErrTooManyRequests, resp.Code)
}

func TestSystemRoutes(t *testing.T) {
	opts := newTestOptions()
	opts.ServerRunOptions.EnableMetrics = true
	opts.ServerRunOptions.EnableProfiling = true
	s := newTestServer(t, opts)

	status, _ := s.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.monitor.Run(ctx)
	require.Eventually(t, s.monitor.Connected, time.Second, 10*time.Millisecond)

	status, resp := s.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Data))

	status, _ = s.do(t, http.MethodGet, "/version", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gin_requests_total")

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	opts := newTestOptions()
	opts.InsecureServingOptions.BindPort = 0
	opts.ServerRunOptions.ShutdownTimeout = time.Second
	s := newTestServer(t, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
