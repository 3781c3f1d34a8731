package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
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
	"rotation.fm/storefront-gateway/config/environment_variables"
)

type stubContent struct{}

func (stubContent) FetchRecords(context.Context, string, string, int, int) ([]product.ContentRecord, error) {
	return nil, nil
}
func (stubContent) CountRecords(context.Context, string) (int, error) { return 0, nil }
func (stubContent) FetchWeekTokens(context.Context) ([]string, error) { return nil, nil }
func (stubContent) FetchSubmenu(context.Context, string) (*contentstore.Submenu, error) {
	return nil, nil
}

type stubCommerce struct{}

func (stubCommerce) GetByID(context.Context, string) (*commerce.Record, error) {
	return nil, commerce.ErrNotFound
}
func (stubCommerce) GetBySKU(context.Context, string) (*commerce.Record, error) {
	return nil, commerce.ErrNotFound
}

func newWebhookFixture(t *testing.T) (*gin.Engine, cache.CacheService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	memory := cache.NewMemoryCacheService()
	inner := catalog.NewService(stubContent{}, catalog.NewEnricher(stubCommerce{}))
	route := NewWebhooksRoute(catalog.NewCachedService(inner, memory))

	engine := gin.New()
	route.RegisterRouter(engine.Group("/v1"))
	return engine, memory
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestProductUpdateInvalidatesMatchingKeys(t *testing.T) {
	environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "test-secret"
	t.Cleanup(func() { environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "" })

	engine, memory := newWebhookFixture(t)
	ctx := context.Background()
	require.NoError(t, memory.Set(ctx, "v1:products:product:rec-1", "cached", 0))
	require.NoError(t, memory.Set(ctx, "v1:products:new:12:0:4", "cached", 0))
	require.NoError(t, memory.Set(ctx, "v1:products:featured:8", "cached", 0))

	body := []byte(`{"productId":"rec-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/product-update", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("test-secret", body))
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	gone, err := memory.Exists(ctx, "v1:products:product:rec-1")
	require.NoError(t, err)
	assert.False(t, gone)
	gone, err = memory.Exists(ctx, "v1:products:new:12:0:4")
	require.NoError(t, err)
	assert.False(t, gone)
	// Featured listings are only cleared by a full flush.
	kept, err := memory.Exists(ctx, "v1:products:featured:8")
	require.NoError(t, err)
	assert.True(t, kept)
}

func TestProductUpdateEmptyIDFlushesEverything(t *testing.T) {
	environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "test-secret"
	t.Cleanup(func() { environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "" })

	engine, memory := newWebhookFixture(t)
	ctx := context.Background()
	require.NoError(t, memory.Set(ctx, "v1:products:featured:8", "cached", 0))

	body := []byte(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/product-update", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("test-secret", body))
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	exists, err := memory.Exists(ctx, "v1:products:featured:8")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductUpdateRejectsBadSignature(t *testing.T) {
	environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "test-secret"
	t.Cleanup(func() { environment_variables.EnvironmentVariables.WEBHOOK_SECRET = "" })

	engine, _ := newWebhookFixture(t)

	body := []byte(`{"productId":"rec-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/product-update", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("wrong-secret", body))
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestProductUpdateRejectsUnsignedWhenUnconfigured(t *testing.T) {
	environment_variables.EnvironmentVariables.WEBHOOK_SECRET = ""

	engine, _ := newWebhookFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/product-update", bytes.NewReader([]byte(`{}`)))
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
