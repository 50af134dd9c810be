package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-backend/internal/extract"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
)

// ErrInvalidInput is returned for a missing file name or empty file.
var ErrInvalidInput = errors.New("a non-empty file with a name is required")

// Service extracts resume text and optionally retains the upload.
type Service struct {
	Store  object.Store
	Repo   Repo
	Retain bool
}

// Extract reads text from data. When retention is on, the original and the
// extracted text are written to the object store and recorded for signed-in
// owners. Retention failures are logged and never fail the extraction.
func (s *Service) Extract(ctx context.Context, owner, fileName, mimeType string, data []byte) (Result, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || len(data) == 0 {
		metrics.IncUpload("invalid")
		return Result{}, ErrInvalidInput
	}

	text, resolved, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		var unsupported *extract.UnsupportedError
		if errors.As(err, &unsupported) {
			metrics.IncUpload("unsupported")
		} else {
			metrics.IncUpload("failed")
		}
		return Result{}, err
	}

	res := Result{FileName: fileName, MimeType: resolved, Text: text}
	if s.Retain && s.Store != nil {
		key, err := s.retain(ctx, owner, fileName, resolved, data, text)
		if err != nil {
			telemetry.Error("upload.retain_failed", map[string]any{"user_id": owner, "file_name": fileName, "error": err.Error()})
		} else {
			res.StorageKey = key
		}
	}
	metrics.IncUpload("ok")
	telemetry.Info("upload.extracted", map[string]any{
		"user_id":   owner,
		"mime_type": resolved,
		"size":      len(data),
		"text_len":  len(text),
		"retained":  res.StorageKey != "",
	})
	return res, nil
}

func (s *Service) retain(ctx context.Context, owner, fileName, mimeType string, data []byte, text string) (string, error) {
	key, err := object.NewKey(owner, fileName)
	if err != nil {
		return "", err
	}
	size, err := s.Store.Put(ctx, key, mimeType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store original: %w", err)
	}
	extractedKey := object.ExtractedKey(key)
	if _, err := s.Store.Put(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("store extracted text: %w", err)
	}
	if owner != "" && s.Repo != nil {
		err := s.Repo.Create(ctx, Upload{
			ID:               uuid.NewString(),
			UserID:           owner,
			FileName:         fileName,
			MimeType:         mimeType,
			SizeBytes:        size,
			StorageProvider:  s.Store.Provider(),
			StorageKey:       key,
			ExtractedTextKey: extractedKey,
			CreatedAt:        time.Now().UTC(),
		})
		if err != nil {
			return "", fmt.Errorf("record upload: %w", err)
		}
	}
	return key, nil
}

// List returns a signed-in user's retained uploads.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Upload, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if s.Repo == nil {
		return []Upload{}, nil
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
