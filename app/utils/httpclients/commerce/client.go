// Package commerce talks to the transactional backend that owns price,
// inventory and variant data.
package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"rotation.fm/storefront-gateway/app/utils/httpclients"
	"rotation.fm/storefront-gateway/config/environment_variables"
	"resty.dev/v3"
)

var RestyClient *resty.Client

// ErrNotFound marks a lookup that completed but matched nothing.
var ErrNotFound = errors.New("commerce record not found")

func Init() {
	RestyClient = httpclients.NewClient("CommerceStoreClient")
	RestyClient.SetBaseURL(environment_variables.EnvironmentVariables.COMMERCE_STORE_URL)
	if token := environment_variables.EnvironmentVariables.COMMERCE_STORE_TOKEN; token != "" {
		RestyClient.SetAuthToken(token)
	}
}

// Record is the authoritative commerce view of a product.
type Record struct {
	ID              string  `json:"id"`
	SKU             string  `json:"sku"`
	Slug            string  `json:"slug"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	StockLevel      int     `json:"stock_level"`
	Purchasable     bool    `json:"purchasable"`
	ConditionMedia  string  `json:"condition_media"`
	ConditionSleeve string  `json:"condition_sleeve"`
	ConditionNotes  string  `json:"condition_notes"`
}

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// GetByID fetches the commerce record by its stable identifier.
func (c *Client) GetByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	resp, err := RestyClient.R().
		SetContext(ctx).
		SetResult(&record).
		Get(fmt.Sprintf("/v1/products/%s", id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("commerce store lookup failed: %s", resp.Status())
	}
	return &record, nil
}

// GetBySKU fetches the commerce record by SKU.
func (c *Client) GetBySKU(ctx context.Context, sku string) (*Record, error) {
	var records []Record
	resp, err := RestyClient.R().
		SetContext(ctx).
		SetQueryParam("sku", sku).
		SetResult(&records).
		Get("/v1/products")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("commerce store lookup failed: %s", resp.Status())
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}
