package dto

// UploadResponse is returned on a successful upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// DeleteUploadRequest identifies an asset to remove by its public URL.
type DeleteUploadRequest struct {
	URL string `json:"url"`
}
