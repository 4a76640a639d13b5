package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catalog-app/internal/catalog"
	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote/memory"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *memory.Store, *catalog.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	remote := memory.New()
	store := catalog.NewStore()
	h := NewHandler(store, catalog.NewGateway(remote, remote), zerolog.Nop())

	r := gin.New()
	r.GET("/categories", h.List)
	r.POST("/categories", h.Add)
	r.DELETE("/categories/:name", h.Remove)
	return r, remote, store
}

func do(r *gin.Engine, method, target, body string) (int, listResponse) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out listResponse
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestList_FromSnapshot(t *testing.T) {
	r, _, store := setup(t)

	code, out := do(r, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, out.Loaded)
	assert.Empty(t, out.Categories)

	store.ReplaceCategories(works.CategoryList{"Vasos", "Mesa"})
	_, out = do(r, http.MethodGet, "/categories", "")
	assert.True(t, out.Loaded)
	assert.Equal(t, works.CategoryList{"Vasos", "Mesa"}, out.Categories)
}

func TestAdd(t *testing.T) {
	r, remote, _ := setup(t)
	require.NoError(t, remote.SetCategories(context.Background(), works.CategoryList{"Mesa", "Tapetes"}))

	code, out := do(r, http.MethodPost, "/categories", `{"name":"  Vasos "}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, works.CategoryList{"Mesa", "Tapetes", "Vasos"}, out.Categories)

	code, _ = do(r, http.MethodPost, "/categories", `{"name":"Mesa"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(r, http.MethodPost, "/categories", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(r, http.MethodPost, "/categories", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	list, _, err := remote.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, works.CategoryList{"Mesa", "Tapetes", "Vasos"}, list)
}

func TestRemove_LeavesArtworksAlone(t *testing.T) {
	r, remote, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, remote.SetCategories(ctx, works.CategoryList{"Mesa", "Tapetes"}))
	a := &works.Artwork{Title: "Tapete Redondo", Category: "Tapetes", Price: 90}
	_, err := remote.Add(ctx, a)
	require.NoError(t, err)

	code, out := do(r, http.MethodDelete, "/categories/"+url.PathEscape("Tapetes"), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, works.CategoryList{"Mesa"}, out.Categories)

	got, err := remote.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tapetes", got.Category)

	code, out = do(r, http.MethodDelete, "/categories/Nada", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, works.CategoryList{"Mesa"}, out.Categories)
}

func TestAdd_RemoteFailure(t *testing.T) {
	r, remote, _ := setup(t)
	remote.SetFault(assert.AnError)

	code, _ := do(r, http.MethodPost, "/categories", `{"name":"Vasos"}`)
	assert.Equal(t, http.StatusBadGateway, code)
}
