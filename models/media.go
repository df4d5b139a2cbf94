package models

import "time"

// MediaAsset represents a stored binary asset in the uploads directory.
// The ID is the uuid prefix of the storage name; Name is the sanitized
// original filename that follows it.
type MediaAsset struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	MimeType   string    `json:"mimeType,omitempty"`
}
