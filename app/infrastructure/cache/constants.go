package cache

const (
	CacheVersion = "v1"

	// Listing keys embed every argument that affects output. Excluded-id
	// lists are keyed by their length, not their contents, trading cache
	// precision for bounded key size.
	FeaturedProductsKeyPattern = CacheVersion + ":products:featured:%d"
	NewProductsKeyPattern      = CacheVersion + ":products:new:%d:%d:%d"
	ArchiveProductsKeyPattern  = CacheVersion + ":products:archive:%s:%s:%d:%d:%t"
	SearchProductsKeyPattern   = CacheVersion + ":products:search:%s:%d"
	ProductKeyPattern          = CacheVersion + ":products:product:%s"
	BatchProductsKeyPattern    = CacheVersion + ":products:batch:%s"

	WarmLockKey = CacheVersion + ":products:warm:lock"
)

// InvalidationFamilies lists the key patterns cleared on any product update
// in addition to keys containing the updated product id. New-arrival and
// batch listings aggregate many products, so a single update can change them
// without its id appearing in the key.
func InvalidationFamilies() []string {
	return []string{
		CacheVersion + ":products:new:*",
		CacheVersion + ":products:batch:*",
	}
}
