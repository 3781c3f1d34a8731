// Package catalog aggregates content-store and commerce-store data into the
// product listings the storefront renders: featured, new arrivals bucketed
// by drop week, archives filtered by a single facet, and free-text search.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"rotation.fm/storefront-gateway/app/domain/common"
	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/domain/week"
	"rotation.fm/storefront-gateway/app/utils/functional"
	"rotation.fm/storefront-gateway/app/utils/logger"
)

const (
	// everythingSentinel: a limit at or above this means "return everything
	// collected" instead of cutting the list.
	everythingSentinel = 100

	defaultSearchLimit  = 50
	defaultArchiveSize  = 24
	defaultFeaturedSize = 8

	// defaultBatchTimeout races the whole batch orchestration; on expiry
	// the caller gets the empty fallback while upstream calls run to
	// completion.
	defaultBatchTimeout = 10 * time.Second
)

// Service orchestrates listing queries. All failures are logged and
// converted to degraded empty shapes; no public method returns an error.
type Service struct {
	content      ContentStore
	enricher     *Enricher
	now          func() time.Time
	batchTimeout time.Duration
}

func NewService(content ContentStore, enricher *Enricher) *Service {
	return &Service{
		content:      content,
		enricher:     enricher,
		now:          time.Now,
		batchTimeout: defaultBatchTimeout,
	}
}

// NewProductsResult pairs the flat new-arrivals list with the per-week
// counts the UI uses to label sections.
type NewProductsResult struct {
	Products      []product.Product `json:"products"`
	WeekBreakdown map[string]int    `json:"weekBreakdown"`
}

// ArchiveQuery describes one paginated archive listing.
type ArchiveQuery struct {
	Facet             Facet  `json:"facet"`
	Value             string `json:"value"`
	Page              int    `json:"page"`
	PageSize          int    `json:"pageSize"`
	IncludeOutOfStock bool   `json:"includeOutOfStock"`
}

// ArchivePage is one page of an archive listing.
type ArchivePage struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// FeaturedProducts returns the curated front-page listing. Fast path: the
// content store already filters on featured and stock, and no enrichment
// runs, trading price freshness for latency.
func (s *Service) FeaturedProducts(ctx context.Context, limit int) common.Result[[]product.Product] {
	if limit < 1 {
		limit = defaultFeaturedSize
	}
	recs, err := s.content.FetchRecords(ctx, featuredFilter(), "orderRank", 0, limit)
	if err != nil {
		logger.GetLogger().Errorf("featured products query failed: %v", err)
		return common.Degraded([]product.Product{})
	}
	return common.Ok(functional.Map(recs, product.FromContent))
}

// NewProducts returns the flat new-arrivals list for callers that do not
// need the per-week counts.
func (s *Service) NewProducts(ctx context.Context, limit int, excludedIDs []string, maxWeeks int) common.Result[[]product.Product] {
	result := s.NewProductsWithBreakdown(ctx, limit, excludedIDs, maxWeeks)
	if result.Degraded {
		return common.Degraded(result.Value.Products)
	}
	return common.Ok(result.Value.Products)
}

// NewProductsWithBreakdown collects new arrivals across up to maxWeeks drop
// weeks, most recent first. The most recent week may include out-of-stock
// items because just-dropped inventory has not always settled; older weeks
// are filtered to in-stock. Products are deduplicated against excludedIDs
// and across weeks, since a record can carry several week tags.
func (s *Service) NewProductsWithBreakdown(ctx context.Context, limit int, excludedIDs []string, maxWeeks int) common.Result[NewProductsResult] {
	result := NewProductsResult{
		Products:      []product.Product{},
		WeekBreakdown: map[string]int{},
	}

	tokens, err := s.content.FetchWeekTokens(ctx)
	if err != nil {
		logger.GetLogger().Errorf("week token query failed: %v", err)
		return common.Degraded(result)
	}

	targets := week.TargetWeeks(s.now(), maxWeeks, functional.ToSet(tokens))

	used := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		used[id] = struct{}{}
	}

	degraded := false
	for i, token := range targets {
		if s.limitReached(limit, len(result.Products)) {
			break
		}
		inStockOnly := i > 0
		recs, err := s.content.FetchRecords(ctx, weekFilter(token, inStockOnly), "orderRank", 0, 0)
		if err != nil {
			logger.GetLogger().Errorf("week %s query failed: %v", token, err)
			degraded = true
			continue
		}

		products := s.enricher.EnrichAll(ctx, recs)
		for j := range products {
			if s.limitReached(limit, len(result.Products)) {
				break
			}
			p := products[j]
			if _, seen := used[p.ID]; seen {
				continue
			}
			used[p.ID] = struct{}{}
			p.Week = token
			result.Products = append(result.Products, p)
			result.WeekBreakdown[token]++
		}
	}

	if degraded {
		return common.Degraded(result)
	}
	return common.Ok(result)
}

func (s *Service) limitReached(limit, collected int) bool {
	return limit < everythingSentinel && collected >= limit
}

// ArchiveProducts returns one page of products filtered by a single facet.
func (s *Service) ArchiveProducts(ctx context.Context, q ArchiveQuery) common.Result[ArchivePage] {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultArchiveSize
	}
	page := ArchivePage{Products: []product.Product{}, Page: q.Page, PageSize: q.PageSize}

	filter := s.archiveFilter(ctx, q)
	if !q.IncludeOutOfStock {
		filter += ` && stock > 0`
	}

	total, err := s.content.CountRecords(ctx, filter)
	if err != nil {
		logger.GetLogger().Errorf("archive count failed for %s=%s: %v", q.Facet, q.Value, err)
		return common.Degraded(page)
	}
	page.Total = total

	recs, err := s.content.FetchRecords(ctx, filter, "orderRank", (q.Page-1)*q.PageSize, q.PageSize)
	if err != nil {
		logger.GetLogger().Errorf("archive query failed for %s=%s: %v", q.Facet, q.Value, err)
		return common.Degraded(page)
	}

	products := s.enricher.EnrichAll(ctx, recs)
	s.sortArchive(products, recs, q.IncludeOutOfStock)
	page.Products = products
	return common.Ok(page)
}

// archiveFilter resolves the facet to a content filter. Genre is two-tier:
// the curated submenu taxonomy wins because it carries the editorial list
// of related genre aliases; the slug heuristic is only a fallback.
func (s *Service) archiveFilter(ctx context.Context, q ArchiveQuery) string {
	if q.Facet != FacetGenre {
		return facetFilter(q.Facet, q.Value, nil)
	}

	submenu, err := s.content.FetchSubmenu(ctx, q.Value)
	if err != nil {
		logger.GetLogger().Warnf("submenu lookup failed for %s: %v", q.Value, err)
	}
	if submenu != nil {
		aliases := submenu.RelatedGenres
		if submenu.Label != "" {
			aliases = append([]string{submenu.Label}, aliases...)
		}
		return facetFilter(FacetGenre, q.Value, aliases)
	}
	return facetFilter(FacetGenre, q.Value, []string{slugToLabel(q.Value)})
}

// sortArchive orders a fetched page. When out-of-stock items are included,
// in-stock products from the current drop week float to the top; otherwise
// ordering is week recency, then the manual orderRank.
func (s *Service) sortArchive(products []product.Product, recs []product.ContentRecord, includeOutOfStock bool) {
	currentWeek := week.CurrentToken(s.now())

	type sortKey struct {
		current   bool
		weekKey   string
		orderRank string
	}
	keys := make([]sortKey, len(products))
	for i := range products {
		keys[i] = sortKey{
			current:   includeOutOfStock && products[i].StockLevel > 0 && recs[i].InWeek(currentWeek),
			weekKey:   latestWeekKey(recs[i].Weeks),
			orderRank: recs[i].OrderRank,
		}
	}

	indexes := make([]int, len(products))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		ka, kb := keys[indexes[a]], keys[indexes[b]]
		if ka.current != kb.current {
			return ka.current
		}
		if ka.weekKey != kb.weekKey {
			return ka.weekKey > kb.weekKey
		}
		return ka.orderRank < kb.orderRank
	})

	sorted := make([]product.Product, len(products))
	for i, idx := range indexes {
		sorted[i] = products[idx]
	}
	copy(products, sorted)
}

// latestWeekKey returns a sortable year+week key for the most recent token
// a record carries. Tokens are WWYY, so recency comparison flips the halves.
func latestWeekKey(tokens []string) string {
	latest := ""
	for _, token := range tokens {
		if len(token) != 4 {
			continue
		}
		key := token[2:] + token[:2]
		if key > latest {
			latest = key
		}
	}
	return latest
}

// SearchProducts runs a free-text search. Enrichment is mandatory here:
// stock is commerce-authoritative, and the listing post-filters to in-stock
// only after the merge.
func (s *Service) SearchProducts(ctx context.Context, term string, limit int) common.Result[[]product.Product] {
	term = strings.TrimSpace(term)
	if term == "" {
		return common.Ok([]product.Product{})
	}
	if limit < 1 {
		limit = defaultSearchLimit
	}

	// Fetch every match: the in-stock cut happens after enrichment, so a
	// bounded fetch could under-fill the page when matches are out of stock.
	recs, err := s.content.FetchRecords(ctx, searchFilter(term), "orderRank", 0, 0)
	if err != nil {
		logger.GetLogger().Errorf("search query failed for %q: %v", term, err)
		return common.Degraded([]product.Product{})
	}

	products := functional.Filter(s.enricher.EnrichAll(ctx, recs), func(p product.Product) bool {
		return p.StockLevel > 0
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return common.Ok(products)
}

// Product looks up a single product by slug, id or SKU. A nil value with
// Degraded false means the product does not exist.
func (s *Service) Product(ctx context.Context, slugOrID string) common.Result[*product.Product] {
	recs, err := s.content.FetchRecords(ctx, productFilter(slugOrID), "", 0, 1)
	if err != nil {
		logger.GetLogger().Errorf("product query failed for %s: %v", slugOrID, err)
		return common.Degraded[*product.Product](nil)
	}
	if len(recs) == 0 {
		return common.Ok[*product.Product](nil)
	}
	merged := s.enricher.Enrich(ctx, recs[0])
	return common.Ok(&merged)
}

// BatchProducts fetches and enriches a fixed id list, raced against a
// timeout that resolves to the empty fallback. Abandoned upstream calls
// still run to completion.
func (s *Service) BatchProducts(ctx context.Context, ids []string) common.Result[[]product.Product] {
	if len(ids) == 0 {
		return common.Ok([]product.Product{})
	}

	done := make(chan common.Result[[]product.Product], 1)
	go func() {
		done <- s.fetchBatch(ctx, ids)
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(s.batchTimeout):
		logger.GetLogger().Errorf("batch fetch timed out for %d ids", len(ids))
		return common.Degraded([]product.Product{})
	}
}

func (s *Service) fetchBatch(ctx context.Context, ids []string) common.Result[[]product.Product] {
	recs, err := s.content.FetchRecords(ctx, batchFilter(ids), "", 0, len(ids))
	if err != nil {
		logger.GetLogger().Errorf("batch query failed: %v", err)
		return common.Degraded([]product.Product{})
	}

	enriched := s.enricher.EnrichAll(ctx, recs)
	byID := make(map[string]product.Product, len(enriched))
	for _, p := range enriched {
		byID[p.ID] = p
	}

	// Preserve the caller's id order.
	products := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return common.Ok(products)
}
