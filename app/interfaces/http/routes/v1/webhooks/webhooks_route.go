package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/interfaces/http/responses"
	"rotation.fm/storefront-gateway/app/utils/logger"
	"rotation.fm/storefront-gateway/config/environment_variables"
)

const signatureHeader = "X-Webhook-Signature"

// WebhooksRoute receives update notifications from the content and commerce
// stores and invalidates the affected cache entries.
type WebhooksRoute struct {
	catalogService *catalog.CachedService
}

func NewWebhooksRoute(catalogService *catalog.CachedService) *WebhooksRoute {
	return &WebhooksRoute{
		catalogService: catalogService,
	}
}

func (route *WebhooksRoute) RegisterRouter(router gin.IRouter) {
	webhooksRouter := router.Group("/webhooks")
	webhooksRouter.POST("/product-update", route.ProductUpdate)
}

type ProductUpdateRequest struct {
	ProductID string `json:"productId"`
}

type ProductUpdateResponse struct {
	Object string `json:"object"`
	Status string `json:"status"`
}

// ProductUpdate godoc
// @Summary     Product update webhook
// @Description Invalidates cached listings for an updated product. An empty productId clears the whole cache.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       X-Webhook-Signature header string               true "hex HMAC-SHA256 of the raw body"
// @Param       request             body   ProductUpdateRequest true "updated product"
// @Success     200 {object} ProductUpdateResponse
// @Failure     401 {object} responses.ErrorResponse
// @Router      /v1/webhooks/product-update [post]
func (route *WebhooksRoute) ProductUpdate(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	body, err := io.ReadAll(reqCtx.Request.Body)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "f3a9d1c7-2b84-4e06-9d5f-7c1e8a0b6d29",
			Error: "unreadable request body",
		})
		return
	}

	if !verifySignature(body, reqCtx.GetHeader(signatureHeader)) {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "8d2c5e91-4f7a-43b6-a0e8-1b9f6d3c7a52",
			Error: "invalid webhook signature",
		})
		return
	}

	var request ProductUpdateRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "6b1e8f43-a92d-4c57-b3f0-5d7c2e9a1b86",
				Error: "Invalid request payload",
			})
			return
		}
	}

	if err := route.catalogService.InvalidateProductCache(ctx, request.ProductID); err != nil {
		logger.GetLogger().Errorf("webhook: cache invalidation failed for %q: %v", request.ProductID, err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "0a7f4d28-6c31-45e9-8b2a-9e5d1c6f3b74",
			Error: "cache invalidation failed",
		})
		return
	}

	reqCtx.JSON(http.StatusOK, ProductUpdateResponse{
		Object: "cache.invalidation",
		Status: "ok",
	})
}

// verifySignature checks the hex HMAC-SHA256 of the raw body against the
// shared webhook secret. With no secret configured, webhooks are rejected
// rather than accepted unsigned.
func verifySignature(body []byte, signature string) bool {
	secret := environment_variables.EnvironmentVariables.WEBHOOK_SECRET
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
