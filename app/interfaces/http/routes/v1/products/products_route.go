package products

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/interfaces/http/responses"
)

const (
	defaultNewLimit    = 12
	defaultNewMaxWeeks = 4
	maxBatchSize       = 50
)

// ProductsRoute exposes the read-only product listing endpoints the
// storefront renders from.
type ProductsRoute struct {
	catalogService *catalog.CachedService
}

func NewProductsRoute(catalogService *catalog.CachedService) *ProductsRoute {
	return &ProductsRoute{
		catalogService: catalogService,
	}
}

func (route *ProductsRoute) RegisterRouter(router gin.IRouter) {
	productsRouter := router.Group("/products")
	productsRouter.GET("/featured", route.GetFeaturedProducts)
	productsRouter.GET("/new", route.GetNewProducts)
	productsRouter.GET("/new-breakdown", route.GetNewProductsWithBreakdown)
	productsRouter.GET("/archive", route.GetProductsByArchive)
	productsRouter.GET("/search", route.SearchProducts)
	productsRouter.POST("/batch", route.GetBatchProducts)
	productsRouter.GET("/:slugOrId", route.GetProduct)
}

// GetFeaturedProducts godoc
// @Summary     List featured products
// @Description Returns the curated featured listing, without live commerce enrichment.
// @Tags        products
// @Produce     json
// @Param       limit query int false "maximum products to return"
// @Success     200 {object} responses.GeneralResponse[[]product.Product]
// @Router      /v1/products/featured [get]
func (route *ProductsRoute) GetFeaturedProducts(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	limit := intQuery(reqCtx, "limit", 0)

	result := route.catalogService.FeaturedProducts(ctx, limit)
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

// GetNewProducts godoc
// @Summary     List new arrivals
// @Description Returns new arrivals across recent drop weeks, most recent first.
// @Tags        products
// @Produce     json
// @Param       limit     query int    false "maximum products to return; 100 or more returns everything"
// @Param       max_weeks query int    false "how many drop weeks to cover"
// @Param       excluded  query string false "comma-separated product ids to skip"
// @Success     200 {object} responses.GeneralResponse[[]product.Product]
// @Router      /v1/products/new [get]
func (route *ProductsRoute) GetNewProducts(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	limit := intQuery(reqCtx, "limit", defaultNewLimit)
	maxWeeks := intQuery(reqCtx, "max_weeks", defaultNewMaxWeeks)
	excluded := csvQuery(reqCtx, "excluded")

	result := route.catalogService.NewProducts(ctx, limit, excluded, maxWeeks)
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

// GetNewProductsWithBreakdown godoc
// @Summary     List new arrivals with week breakdown
// @Description Returns new arrivals plus the per-week counts the UI labels sections with.
// @Tags        products
// @Produce     json
// @Param       limit     query int    false "maximum products to return; 100 or more returns everything"
// @Param       max_weeks query int    false "how many drop weeks to cover"
// @Param       excluded  query string false "comma-separated product ids to skip"
// @Success     200 {object} responses.GeneralResponse[catalog.NewProductsResult]
// @Router      /v1/products/new-breakdown [get]
func (route *ProductsRoute) GetNewProductsWithBreakdown(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	limit := intQuery(reqCtx, "limit", defaultNewLimit)
	maxWeeks := intQuery(reqCtx, "max_weeks", defaultNewMaxWeeks)
	excluded := csvQuery(reqCtx, "excluded")

	result := route.catalogService.NewProductsWithBreakdown(ctx, limit, excluded, maxWeeks)
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[catalog.NewProductsResult]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

// GetProductsByArchive godoc
// @Summary     List archive products by facet
// @Description Returns one page of products filtered by a single facet (artist, label, genre, format, week or tag).
// @Tags        products
// @Produce     json
// @Param       facet                query string true  "facet to filter on"
// @Param       value                query string true  "facet value or slug"
// @Param       page                 query int    false "page number, 1-based"
// @Param       page_size            query int    false "page size"
// @Param       include_out_of_stock query bool   false "include out-of-stock products"
// @Success     200 {object} responses.ListResponse[product.Product]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/products/archive [get]
func (route *ProductsRoute) GetProductsByArchive(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	facet, ok := catalog.ParseFacet(reqCtx.Query("facet"))
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5f0e2f5e-8a13-4a8f-9c66-3a1d6f0e9b27",
			Error: "unknown archive facet",
		})
		return
	}
	value := strings.TrimSpace(reqCtx.Query("value"))
	if value == "" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "9c1d4a7b-06e2-44f0-b7a9-58c2f3d8e614",
			Error: "archive value is required",
		})
		return
	}

	result := route.catalogService.ArchiveProducts(ctx, catalog.ArchiveQuery{
		Facet:             facet,
		Value:             value,
		Page:              intQuery(reqCtx, "page", 1),
		PageSize:          intQuery(reqCtx, "page_size", 0),
		IncludeOutOfStock: reqCtx.Query("include_out_of_stock") == "true",
	})
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.ListResponse[product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Page:     result.Value.Page,
		PageSize: result.Value.PageSize,
		Total:    result.Value.Total,
		Results:  result.Value.Products,
	})
}

// SearchProducts godoc
// @Summary     Search products
// @Description Free-text search over title, artist, label, genre and tags; in-stock results only.
// @Tags        products
// @Produce     json
// @Param       q     query string true  "search term"
// @Param       limit query int    false "maximum results"
// @Success     200 {object} responses.GeneralResponse[[]product.Product]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/products/search [get]
func (route *ProductsRoute) SearchProducts(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	term := strings.TrimSpace(reqCtx.Query("q"))
	if term == "" {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d2b8a7e4-41cd-4f73-8e05-2f9c6a1b0d38",
			Error: "search term is required",
		})
		return
	}

	result := route.catalogService.SearchProducts(ctx, term, intQuery(reqCtx, "limit", 0))
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

type BatchProductsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// GetBatchProducts godoc
// @Summary     Fetch products by id list
// @Description Returns the requested products in request order; unknown ids are skipped.
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body BatchProductsRequest true "product ids"
// @Success     200 {object} responses.GeneralResponse[[]product.Product]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/products/batch [post]
func (route *ProductsRoute) GetBatchProducts(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request BatchProductsRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "7a4f9e21-63b8-45da-9f1c-8b0e5c7d2a46",
			Error: "Invalid request payload",
		})
		return
	}
	if len(request.IDs) > maxBatchSize {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "1e6c3b90-d5a2-4e87-b4f1-0c9d8e7a6f52",
			Error: "too many product ids",
		})
		return
	}

	result := route.catalogService.BatchProducts(ctx, request.IDs)
	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[[]product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

// GetProduct godoc
// @Summary     Get a single product
// @Description Looks a product up by slug, id or SKU.
// @Tags        products
// @Produce     json
// @Param       slugOrId path string true "product slug, id or SKU"
// @Success     200 {object} responses.GeneralResponse[product.Product]
// @Failure     404 {object} responses.ErrorResponse
// @Router      /v1/products/{slugOrId} [get]
func (route *ProductsRoute) GetProduct(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	result := route.catalogService.Product(ctx, reqCtx.Param("slugOrId"))
	if result.Value == nil {
		if result.Degraded {
			reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "3c8e1f67-92ab-4d04-a5b3-6e0f2d9c8b71",
				Error: "product lookup unavailable",
			})
			return
		}
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "b47d0a92-5e6c-4f18-8a3d-1c2b9e0f7d64",
			Error: "product not found",
		})
		return
	}

	markDegraded(reqCtx, result.Degraded)
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*product.Product]{
		Status:   responses.StatusFor(result.Degraded),
		Degraded: result.Degraded,
		Result:   result.Value,
	})
}

// markDegraded flags degraded payloads in a header so CDNs and the
// storefront can skip long-lived caching of them.
func markDegraded(reqCtx *gin.Context, degraded bool) {
	if degraded {
		reqCtx.Header("X-Degraded", "true")
	}
}

func intQuery(reqCtx *gin.Context, name string, fallback int) int {
	raw := reqCtx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func csvQuery(reqCtx *gin.Context, name string) []string {
	raw := strings.TrimSpace(reqCtx.Query(name))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
