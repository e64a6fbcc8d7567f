package models

type OCRRequest struct {
	// GCS URI of a stored image, e.g. "gs://bucket-name/path/to/image.jpg"
	ImageGCSURL string `json:"image_gcs_url" binding:"required"`
}
