package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	repo   *items.MemoryRepository
}

func newTestAPI(t *testing.T, ephemeral bool, seed int) *testAPI {
	t.Helper()
	repo := items.NewMemoryRepository()
	require.NoError(t, items.Seed(context.Background(), repo, seed))

	reg := prometheus.NewRegistry()
	r := NewRouter(repo, Options{BasePath: "/posts", Ephemeral: ephemeral}, reg, reg, nil)
	return &testAPI{router: r, repo: repo}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestList(t *testing.T) {
	api := newTestAPI(t, true, 12)

	w := api.do(t, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Item](t, w)
	require.Len(t, list, 12)
	assert.EqualValues(t, 1, list[0].ID)

	w = api.do(t, http.MethodGet, "/posts?_limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]models.Item](t, w), 3)

	w = api.do(t, http.MethodGet, "/posts?_limit=abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGet(t *testing.T) {
	api := newTestAPI(t, true, 2)

	w := api.do(t, http.MethodGet, "/posts/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "item 2", decode[models.Item](t, w).Title)

	w = api.do(t, http.MethodGet, "/posts/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")

	w = api.do(t, http.MethodGet, "/posts/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEphemeralWritesAreNotApplied(t *testing.T) {
	api := newTestAPI(t, true, 100)

	w := api.do(t, http.MethodPost, "/posts", `{"title":"t","body":"b"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Item](t, w)
	assert.EqualValues(t, 101, created.ID)
	assert.Equal(t, "t", created.Title)

	// same id again: nothing was stored
	w = api.do(t, http.MethodPost, "/posts", `{"title":"u","body":"c"}`)
	assert.EqualValues(t, 101, decode[models.Item](t, w).ID)

	w = api.do(t, http.MethodPut, "/posts/1", `{"title":"changed","body":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Item{ID: 1, UserID: 1, Title: "changed", Body: "x"}, decode[models.Item](t, w))

	w = api.do(t, http.MethodDelete, "/posts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())

	got, err := api.repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "item 1", got.Title)
	n, _ := api.repo.Count(context.Background())
	assert.EqualValues(t, 100, n)

	w = api.do(t, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), `itemkeeper_collection_writes_total{mode="ephemeral",op="create"} 2`)
}

func TestPersistentWritesAreApplied(t *testing.T) {
	api := newTestAPI(t, false, 2)

	w := api.do(t, http.MethodPost, "/posts", `{"title":"t","body":"b"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Item](t, w)
	assert.EqualValues(t, 3, created.ID)

	w = api.do(t, http.MethodPut, "/posts/3", `{"title":"t2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Item{ID: 3, UserID: 1, Title: "t2", Body: "b"}, decode[models.Item](t, w))

	w = api.do(t, http.MethodDelete, "/posts/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodDelete, "/posts/3", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPut, "/posts/77", `{"title":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadPayload(t *testing.T) {
	api := newTestAPI(t, false, 1)

	w := api.do(t, http.MethodPost, "/posts", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPut, "/posts/1", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodDelete, "/posts/0", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDAndMetrics(t *testing.T) {
	api := newTestAPI(t, true, 1)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set(RequestIDHeaderName, "rid-1")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeaderName))

	w = api.do(t, http.MethodGet, "/posts/1", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeaderName))

	w = api.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `itemkeeper_http_requests_total{method="GET",route="/posts",status="200"} 1`)
	assert.Contains(t, body, `route="/posts/:id"`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, "itemkeeper_http_request_duration_seconds")
}
