package products

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/infrastructure/cache"
	"rotation.fm/storefront-gateway/app/utils/httpclients/commerce"
	"rotation.fm/storefront-gateway/app/utils/httpclients/contentstore"
)

type stubContent struct {
	records []product.ContentRecord
	err     error
}

func (s stubContent) FetchRecords(context.Context, string, string, int, int) ([]product.ContentRecord, error) {
	return s.records, s.err
}
func (s stubContent) CountRecords(context.Context, string) (int, error) {
	return len(s.records), s.err
}
func (s stubContent) FetchWeekTokens(context.Context) ([]string, error) { return nil, s.err }
func (s stubContent) FetchSubmenu(context.Context, string) (*contentstore.Submenu, error) {
	return nil, nil
}

type stubCommerce struct{}

func (stubCommerce) GetByID(context.Context, string) (*commerce.Record, error) {
	return nil, commerce.ErrNotFound
}
func (stubCommerce) GetBySKU(context.Context, string) (*commerce.Record, error) {
	return nil, commerce.ErrNotFound
}

func newEngine(content stubContent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	inner := catalog.NewService(content, catalog.NewEnricher(stubCommerce{}))
	route := NewProductsRoute(catalog.NewCachedService(inner, cache.NewMemoryCacheService()))
	engine := gin.New()
	route.RegisterRouter(engine.Group("/v1"))
	return engine
}

func TestGetFeaturedProductsOk(t *testing.T) {
	engine := newEngine(stubContent{records: []product.ContentRecord{
		{ID: "feat-1", Title: product.StringField("First")},
	}})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/featured", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Status string            `json:"status"`
		Result []product.Product `json:"result"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	require.Len(t, response.Result, 1)
	assert.Equal(t, "feat-1", response.Result[0].ID)
}

func TestGetFeaturedProductsDegradedStillServes(t *testing.T) {
	engine := newEngine(stubContent{err: errors.New("upstream down")})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/featured", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Status   string            `json:"status"`
		Degraded bool              `json:"degraded"`
		Result   []product.Product `json:"result"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "degraded", response.Status)
	assert.True(t, response.Degraded)
	assert.NotNil(t, response.Result)
}

func TestGetProductsByArchiveValidation(t *testing.T) {
	engine := newEngine(stubContent{})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/archive?facet=price&value=x", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/archive?facet=genre", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetProductNotFound(t *testing.T) {
	engine := newEngine(stubContent{})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/ghost", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSearchRequiresTerm(t *testing.T) {
	engine := newEngine(stubContent{})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/products/search", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
