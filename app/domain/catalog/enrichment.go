package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/utils/concurrency"
	"rotation.fm/storefront-gateway/app/utils/httpclients/commerce"
	"rotation.fm/storefront-gateway/app/utils/httpclients/contentstore"
	"rotation.fm/storefront-gateway/app/utils/logger"
)

// enrichmentWidth bounds concurrent commerce-store calls to respect the
// upstream rate limit. All enrichment in the process shares one limiter.
const enrichmentWidth = 5

// ContentStore is the gateway's view of the headless CMS.
type ContentStore interface {
	FetchRecords(ctx context.Context, filter, order string, offset, limit int) ([]product.ContentRecord, error)
	CountRecords(ctx context.Context, filter string) (int, error)
	FetchWeekTokens(ctx context.Context) ([]string, error)
	FetchSubmenu(ctx context.Context, slug string) (*contentstore.Submenu, error)
}

// CommerceStore is the gateway's view of the transactional backend.
type CommerceStore interface {
	GetByID(ctx context.Context, id string) (*commerce.Record, error)
	GetBySKU(ctx context.Context, sku string) (*commerce.Record, error)
}

// Enricher merges content records with their authoritative commerce
// records. A failed commerce lookup degrades to a content-only product; it
// never fails the caller.
type Enricher struct {
	commerce CommerceStore
	limiter  *concurrency.Limiter
}

func NewEnricher(commerceStore CommerceStore) *Enricher {
	return &Enricher{
		commerce: commerceStore,
		limiter:  concurrency.NewLimiter(enrichmentWidth),
	}
}

// Enrich produces the merged product for one content record. Lookup order
// is commerce id first, SKU second.
func (e *Enricher) Enrich(ctx context.Context, rec product.ContentRecord) product.Product {
	merged := product.FromContent(rec)

	var record *commerce.Record
	err := e.limiter.Run(ctx, func() error {
		var lookupErr error
		record, lookupErr = e.lookup(ctx, rec)
		return lookupErr
	})
	if err != nil || record == nil {
		if err != nil && !errors.Is(err, commerce.ErrNotFound) {
			logger.GetLogger().Warnf("commerce lookup failed for %s: %v", rec.ID, err)
		}
		return merged
	}

	applyCommerce(&merged, rec, record)
	return merged
}

// EnrichAll enriches a page of records concurrently, preserving input
// order. Fan-out funnels through the shared limiter, so total concurrency
// against the commerce store stays bounded across weeks and requests.
func (e *Enricher) EnrichAll(ctx context.Context, recs []product.ContentRecord) []product.Product {
	products := make([]product.Product, len(recs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, rec := range recs {
		group.Go(func() error {
			products[i] = e.Enrich(groupCtx, rec)
			return nil
		})
	}
	_ = group.Wait()
	return products
}

func (e *Enricher) lookup(ctx context.Context, rec product.ContentRecord) (*commerce.Record, error) {
	var idErr error
	if rec.CommerceID != "" {
		record, err := e.commerce.GetByID(ctx, rec.CommerceID)
		if err == nil {
			return record, nil
		}
		idErr = err
	}
	if rec.SKU != "" {
		return e.commerce.GetBySKU(ctx, rec.SKU)
	}
	if idErr != nil {
		return nil, idErr
	}
	return nil, commerce.ErrNotFound
}

// applyCommerce overlays the authoritative commerce fields. Commerce wins
// for price/currency/stock and for condition fields when it supplies them;
// editorial fields stay content-authored.
func applyCommerce(p *product.Product, rec product.ContentRecord, record *commerce.Record) {
	if p.ID == "" {
		p.ID = record.ID
	}
	if record.SKU != "" {
		p.SKU = record.SKU
	}
	p.Slug = product.ResolveSlug(record.Slug, rec)
	p.Price = record.Price
	p.Currency = record.Currency
	p.StockLevel = record.StockLevel
	p.StockPurchasable = record.Purchasable
	if record.ConditionMedia != "" {
		p.ConditionMedia = record.ConditionMedia
	}
	if record.ConditionSleeve != "" {
		p.ConditionSleeve = record.ConditionSleeve
	}
	if record.ConditionNotes != "" {
		p.ConditionNotes = record.ConditionNotes
	}
}
