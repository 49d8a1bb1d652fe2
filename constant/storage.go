package constant

// Key prefixes of the per-user persisted key-value store.
const (
	StorageKeyCart     = "cart"
	StorageKeyWishlist = "wishlist"
	StorageKeyTryOn    = "tryon"
)

func StorageKey(prefix, userID string) string {
	return prefix + ":" + userID
}
