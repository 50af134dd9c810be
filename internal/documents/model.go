package documents

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("upload not found")

// Upload records a retained resume file and its extracted text copy.
type Upload struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	FileName         string    `json:"fileName"`
	MimeType         string    `json:"mimeType"`
	SizeBytes        int64     `json:"sizeBytes"`
	StorageProvider  string    `json:"storageProvider"`
	StorageKey       string    `json:"storageKey"`
	ExtractedTextKey string    `json:"extractedTextKey"`
	CreatedAt        time.Time `json:"uploadedAt"`
}

// Result is the reply to an extraction request.
type Result struct {
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	Text       string `json:"text"`
	StorageKey string `json:"storageKey,omitempty"`
}
