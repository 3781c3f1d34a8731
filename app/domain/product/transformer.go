package product

// FromContent builds a content-only Product. Commercial fields stay zeroed;
// the enrichment layer overlays them when a commerce record exists.
func FromContent(rec ContentRecord) Product {
	return Product{
		ID:               rec.ID,
		SKU:              rec.SKU,
		Slug:             ResolveSlug("", rec),
		Price:            0,
		Currency:         "",
		StockLevel:       0,
		StockPurchasable: false,
		Title:            rec.Title.Normalize(),
		Description:      rec.Description.Normalize(),
		Artist:           rec.Artist.Normalize(),
		Label:            rec.Label.Normalize(),
		Format:           rec.Format.Normalize(),
		Genre:            rec.Genre.Normalize(),
		Country:          rec.Country.Normalize(),
		Released:         rec.Released.Normalize(),
		Catalog:          rec.Catalog.Normalize(),
		ConditionMedia:   rec.ConditionMedia.Normalize(),
		ConditionSleeve:  rec.ConditionSleeve.Normalize(),
		ConditionNotes:   rec.ConditionNotes.Normalize(),
		Tags:             rec.Tags,
		Images:           rec.Images,
		Tracklist:        rec.Tracklist,
		InMixtapes:       rec.InMixtapes,
		Featured:         rec.Featured,
		RawContent:       rec.Raw,
	}
}

// ResolveSlug applies the fixed resolution order: commerce slug, content
// slug, SKU, content id. The result is never empty for a record with an id.
func ResolveSlug(commerceSlug string, rec ContentRecord) string {
	if commerceSlug != "" {
		return commerceSlug
	}
	if s := rec.Slug.Normalize(); s != "" {
		return s
	}
	if rec.SKU != "" {
		return rec.SKU
	}
	return rec.ID
}
