package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// ExtractedResume is the text pulled from an uploaded file.
type ExtractedResume struct {
	FileName   string `json:"fileName"`
	MimeType   string `json:"mimeType"`
	Text       string `json:"text"`
	StorageKey string `json:"storageKey,omitempty"`
}

// ExtractResume uploads a resume file and returns its text.
func (c *Client) ExtractResume(ctx context.Context, fileName string, data []byte) (ExtractedResume, error) {
	if !c.begin(ControlUpload) {
		return ExtractedResume{}, ErrInFlight
	}
	defer c.end(ControlUpload)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return ExtractedResume{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return ExtractedResume{}, fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return ExtractedResume{}, fmt.Errorf("build upload: %w", err)
	}

	body, err := c.send(ctx, http.MethodPost, "/api/v1/resumes/extract", w.FormDataContentType(), &buf,
		"Could not extract text from the file. Please paste the content manually.")
	if err != nil {
		return ExtractedResume{}, err
	}
	var out ExtractedResume
	if err := json.Unmarshal(body, &out); err != nil {
		c.notifier.Notify(LevelError, "Could not extract text from the file. Please paste the content manually.")
		return ExtractedResume{}, fmt.Errorf("decode extraction: %w", err)
	}
	c.notifier.Notify(LevelSuccess, "Resume uploaded successfully!")
	return out, nil
}
