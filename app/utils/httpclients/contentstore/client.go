// Package contentstore talks to the headless CMS holding editorial product
// and mixtape documents. The gateway only depends on the store's ability to
// run a filter expression and return matching documents plus a count.
package contentstore

import (
	"context"
	"encoding/json"
	"fmt"

	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/utils/httpclients"
	"rotation.fm/storefront-gateway/config/environment_variables"
	"resty.dev/v3"
)

var RestyClient *resty.Client

func Init() {
	RestyClient = httpclients.NewClient("ContentStoreClient")
	RestyClient.SetBaseURL(environment_variables.EnvironmentVariables.CONTENT_STORE_URL)
	if token := environment_variables.EnvironmentVariables.CONTENT_STORE_TOKEN; token != "" {
		RestyClient.SetAuthToken(token)
	}
}

// Submenu is a curated taxonomy entry. Genre submenus carry the editorial
// list of related genre aliases used to widen archive filters.
type Submenu struct {
	Slug          string   `json:"slug"`
	Label         string   `json:"label"`
	RelatedGenres []string `json:"relatedGenres"`
}

type Client struct {
	dataset string
}

func NewClient() *Client {
	dataset := environment_variables.EnvironmentVariables.CONTENT_STORE_DATASET
	if dataset == "" {
		dataset = "production"
	}
	return &Client{dataset: dataset}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

func (c *Client) query(ctx context.Context, query string) (json.RawMessage, error) {
	var out queryResponse
	resp, err := RestyClient.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&out).
		Get(fmt.Sprintf("/v1/data/query/%s", c.dataset))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("content store query failed: %s", resp.Status())
	}
	return out.Result, nil
}

// FetchRecords runs a filter expression and returns the matching slice of
// documents. Each record keeps its raw JSON alongside the decoded shape.
func (c *Client) FetchRecords(ctx context.Context, filter, order string, offset, limit int) ([]product.ContentRecord, error) {
	query := fmt.Sprintf("*[%s]", filter)
	if order != "" {
		query += fmt.Sprintf(" | order(%s)", order)
	}
	if limit > 0 {
		query += fmt.Sprintf(" [%d...%d]", offset, offset+limit)
	}

	raw, err := c.query(ctx, query)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("content store returned non-list result: %w", err)
	}

	records := make([]product.ContentRecord, 0, len(items))
	for _, item := range items {
		var rec product.ContentRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			// Malformed documents are skipped, never fatal.
			continue
		}
		rec.Raw = item
		records = append(records, rec)
	}
	return records, nil
}

// CountRecords returns the number of documents matching the filter.
func (c *Client) CountRecords(ctx context.Context, filter string) (int, error) {
	raw, err := c.query(ctx, fmt.Sprintf("count(*[%s])", filter))
	if err != nil {
		return 0, err
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, fmt.Errorf("content store returned non-numeric count: %w", err)
	}
	return count, nil
}

// FetchWeekTokens returns the distinct drop-week tokens present across all
// product documents.
func (c *Client) FetchWeekTokens(ctx context.Context) ([]string, error) {
	raw, err := c.query(ctx, `array::unique(*[_type == "product" && defined(week)].week[])`)
	if err != nil {
		return nil, err
	}
	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("content store returned non-list week tokens: %w", err)
	}
	return tokens, nil
}

// FetchSubmenu resolves a curated taxonomy entry by slug. A nil result with
// nil error means no submenu is authored for the slug.
func (c *Client) FetchSubmenu(ctx context.Context, slug string) (*Submenu, error) {
	query := fmt.Sprintf(`*[_type == "submenu" && slug.current == %q][0]{"slug": slug.current, label, relatedGenres}`, slug)
	raw, err := c.query(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var submenu Submenu
	if err := json.Unmarshal(raw, &submenu); err != nil {
		return nil, nil
	}
	if submenu.Slug == "" && submenu.Label == "" {
		return nil, nil
	}
	return &submenu, nil
}
