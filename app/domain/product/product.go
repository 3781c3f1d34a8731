// Package product defines the merged product entity served to the
// storefront: editorial fields from the content store combined with
// price and stock from the commerce store.
package product

import "encoding/json"

// Product is the canonical merged entity. Commerce fields are authoritative
// for price/currency/stock, editorial fields for everything else. RawContent
// retains the untransformed content record so downstream consumers can
// recover attributes the transformer drops.
type Product struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Slug             string          `json:"slug"`
	Price            float64         `json:"price"`
	Currency         string          `json:"currency"`
	StockLevel       int             `json:"stock_level"`
	StockPurchasable bool            `json:"stock_purchasable"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Artist           string          `json:"artist"`
	Label            string          `json:"label"`
	Format           string          `json:"format"`
	Genre            string          `json:"genre"`
	Country          string          `json:"country"`
	Released         string          `json:"released"`
	Catalog          string          `json:"catalog"`
	Tags             []string        `json:"tags"`
	Images           []string        `json:"images"`
	Tracklist        []string        `json:"tracklist"`
	InMixtapes       []string        `json:"inMixtapes"`
	ConditionMedia   string          `json:"condition_media,omitempty"`
	ConditionSleeve  string          `json:"condition_sleeve,omitempty"`
	ConditionNotes   string          `json:"condition_notes,omitempty"`
	Week             string          `json:"week,omitempty"`
	Featured         bool            `json:"featured"`
	RawContent       json.RawMessage `json:"sanityContent,omitempty"`
}

// ContentRecord is a raw content-store document, decoded permissively.
type ContentRecord struct {
	ID          string   `json:"_id"`
	CommerceID  string   `json:"commerceId"`
	SKU         string   `json:"sku"`
	Slug        Field    `json:"slug"`
	Title       Field    `json:"title"`
	Description Field    `json:"description"`
	Artist      Field    `json:"artist"`
	Label       Field    `json:"label"`
	Format      Field    `json:"format"`
	Genre       Field    `json:"genre"`
	Country     Field    `json:"country"`
	Released    Field    `json:"released"`
	Catalog     Field    `json:"catalog"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Tracklist   []string `json:"tracklist"`
	InMixtapes  []string `json:"inMixtapes"`
	Weeks       []string `json:"week"`
	Featured    bool     `json:"featured"`
	Stock       int      `json:"stock"`
	OrderRank   string   `json:"orderRank"`

	ConditionMedia  Field `json:"conditionMedia"`
	ConditionSleeve Field `json:"conditionSleeve"`
	ConditionNotes  Field `json:"conditionNotes"`

	// Raw holds the document exactly as the content store returned it.
	Raw json.RawMessage `json:"-"`
}

// InWeek reports whether the record carries the given drop-week tag. Week
// membership is a set test, not a date range: reissues legitimately belong
// to several drop weeks.
func (r *ContentRecord) InWeek(token string) bool {
	for _, w := range r.Weeks {
		if w == token {
			return true
		}
	}
	return false
}
