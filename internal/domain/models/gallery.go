package models

// GalleryItem is one photo log entry for a flock. ImageData carries the
// picture as base64 text, the same way the capture layer hands it over.
type GalleryItem struct {
	ID        string `json:"id"`
	FlockID   string `json:"flockId"`
	ImageData string `json:"imageData"`
	Date      string `json:"date"` // BS
	Caption   string `json:"caption,omitempty"`
}
