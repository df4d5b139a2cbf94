package models

import "time"

// CVDocument is the metadata for the single current CV/resume document.
// Filename is the generated storage name under the uploads directory.
type CVDocument struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadDate   time.Time `json:"uploadDate"`
	FileType     string    `json:"fileType"`
}
