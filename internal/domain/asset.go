package domain

// StoredAsset describes an uploaded image after it has been persisted.
// Assets are never mutated; removal happens only via delete-by-URL.
type StoredAsset struct {
	Filename  string
	PublicURL string
	SizeBytes int64
}
