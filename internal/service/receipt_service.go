package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/repository/storage"
)

const (
	// MaxReceiptSize is the upload size cap, checked before any round-trip
	MaxReceiptSize = 5 * 1024 * 1024 // 5MB

	// maxReceiptWidth is the width above which phone photos get downscaled
	maxReceiptWidth = 1600

	jpegQuality = 85
)

var (
	ErrReceiptTooLarge      = errors.New("file too large. Maximum size is 5MB")
	ErrReceiptNotImage      = errors.New("invalid file type. Please select an image file")
	ErrStorageNotConfigured = errors.New("receipt storage not configured")
)

// ReceiptService validates and stores receipt images and links them to their
// budget entry. Upload failure never blocks or rolls back the entry itself:
// the entry endpoint and this one are separate, and a failed upload leaves
// the entry's receipt reference untouched.
type ReceiptService struct {
	store     storage.ReceiptStore
	entryRepo domain.BudgetEntryRepository
	publisher RefreshPublisher
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(store storage.ReceiptStore, entryRepo domain.BudgetEntryRepository, publisher RefreshPublisher) *ReceiptService {
	return &ReceiptService{
		store:     store,
		entryRepo: entryRepo,
		publisher: publisher,
	}
}

// IsEnabled indicates whether receipt storage is configured
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// ValidateReceipt applies the local gates: size cap and image content type.
// Both are checked before issuing the upload so an invalid file never costs
// a round-trip.
func (s *ReceiptService) ValidateReceipt(size int64, contentType string) error {
	if size > MaxReceiptSize {
		return ErrReceiptTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrReceiptNotImage
	}
	return nil
}

// Attach validates, uploads, and links a receipt image to an entry,
// returning the updated entry.
func (s *ReceiptService) Attach(ctx context.Context, entryID uuid.UUID, filename, contentType string, data []byte) (*domain.BudgetEntry, error) {
	if !s.IsEnabled() {
		return nil, ErrStorageNotConfigured
	}
	if err := s.ValidateReceipt(int64(len(data)), contentType); err != nil {
		return nil, err
	}

	// Entry must exist before we spend an upload on it.
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}

	body, uploadType, ext := s.prepareImage(data, filename, contentType)

	objectPath := storage.ObjectPath(entryID.String(), ext)
	url, err := s.store.Upload(ctx, objectPath, bytes.NewReader(body), uploadType, int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	updated, err := s.entryRepo.SetReceipt(entryID, &domain.ReceiptRef{URL: url, Filename: filename})
	if err != nil {
		// The blob is orphaned now; clean it up best-effort.
		if delErr := s.store.Delete(ctx, objectPath); delErr != nil {
			log.Warn().Err(delErr).Str("object_path", objectPath).Msg("Failed to clean up orphaned receipt")
		}
		return nil, err
	}

	s.publisher.PublishRefresh(entry.EventID, ResourceEntry)
	return updated, nil
}

// prepareImage downscales oversized photos before upload. Receipts are
// usually phone camera shots far wider than any screen renders them; images
// above maxReceiptWidth are resized and re-encoded as JPEG. Anything that
// does not decode (or is already small) uploads as-is.
func (s *ReceiptService) prepareImage(data []byte, filename, contentType string) (body []byte, uploadType, ext string) {
	ext = strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds().Dx() <= maxReceiptWidth {
		return data, contentType, ext
	}

	resized := imaging.Resize(img, maxReceiptWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to re-encode receipt, uploading original")
		return data, contentType, ext
	}
	return buf.Bytes(), "image/jpeg", ".jpg"
}
