package catalog

import (
	"fmt"
	"strings"
)

// Facet identifies the single dimension an archive listing filters on.
type Facet string

const (
	FacetArtist Facet = "artist"
	FacetLabel  Facet = "label"
	FacetGenre  Facet = "genre"
	FacetFormat Facet = "format"
	FacetWeek   Facet = "week"
	FacetTag    Facet = "tag"
)

// ParseFacet maps a request parameter to a known facet.
func ParseFacet(value string) (Facet, bool) {
	switch Facet(strings.ToLower(strings.TrimSpace(value))) {
	case FacetArtist:
		return FacetArtist, true
	case FacetLabel:
		return FacetLabel, true
	case FacetGenre:
		return FacetGenre, true
	case FacetFormat:
		return FacetFormat, true
	case FacetWeek:
		return FacetWeek, true
	case FacetTag:
		return FacetTag, true
	}
	return "", false
}

const productType = `_type == "product"`

func featuredFilter() string {
	return productType + ` && featured == true && stock > 0`
}

func weekFilter(token string, inStockOnly bool) string {
	filter := fmt.Sprintf(`%s && %q in week`, productType, token)
	if inStockOnly {
		filter += ` && stock > 0`
	}
	return filter
}

// facetFilter builds the archive filter for one facet. Each facet gets its
// own matching heuristic because authored content varies in case and
// punctuation: artist/label/genre/format match loosely on lowered text,
// week and tag are exact membership tests.
func facetFilter(facet Facet, value string, genreAliases []string) string {
	switch facet {
	case FacetArtist:
		return fmt.Sprintf(`%s && lower(artist) match %q`, productType, loosePattern(value))
	case FacetLabel:
		return fmt.Sprintf(`%s && lower(label) match %q`, productType, loosePattern(value))
	case FacetFormat:
		return fmt.Sprintf(`%s && lower(format) match %q`, productType, loosePattern(value))
	case FacetGenre:
		clauses := make([]string, 0, len(genreAliases))
		for _, alias := range genreAliases {
			clauses = append(clauses, fmt.Sprintf(`lower(genre) match %q`, loosePattern(alias)))
		}
		if len(clauses) == 0 {
			clauses = append(clauses, fmt.Sprintf(`lower(genre) match %q`, loosePattern(value)))
		}
		return fmt.Sprintf(`%s && (%s)`, productType, strings.Join(clauses, " || "))
	case FacetWeek:
		return fmt.Sprintf(`%s && %q in week`, productType, strings.TrimSpace(value))
	case FacetTag:
		return fmt.Sprintf(`%s && %q in tags`, productType, strings.ToLower(strings.TrimSpace(value)))
	}
	return productType
}

// searchFilter ORs substring and membership conditions across the fields a
// visitor would search by. Drafts without a commerce id are excluded; stock
// is commerce-authoritative, so the in-stock cut happens after enrichment.
func searchFilter(term string) string {
	pattern := loosePattern(term)
	return fmt.Sprintf(
		`%s && defined(commerceId) && (lower(title) match %q || lower(artist) match %q || lower(label) match %q || lower(genre) match %q || %q in tags)`,
		productType, pattern, pattern, pattern, pattern, strings.ToLower(strings.TrimSpace(term)))
}

func productFilter(slugOrID string) string {
	v := strings.TrimSpace(slugOrID)
	return fmt.Sprintf(`%s && (slug.current == %q || _id == %q || sku == %q)`, productType, v, v, v)
}

func batchFilter(ids []string) string {
	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, fmt.Sprintf("%q", id))
	}
	return fmt.Sprintf(`%s && _id in [%s]`, productType, strings.Join(quoted, ","))
}

// loosePattern turns a slug or free-text value into a lowered substring
// pattern: dashes become spaces, stray quotes drop out.
func loosePattern(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	return "*" + cleaned + "*"
}

// slugToLabel is the naive fallback when no curated submenu exists for a
// genre slug: dashes to spaces, title case.
func slugToLabel(slug string) string {
	words := strings.Split(strings.ToLower(strings.TrimSpace(slug)), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
