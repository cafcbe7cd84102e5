package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
)

// ReceiptHandler handles receipt upload HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// UploadReceipt handles POST /api/v1/entries/:id/receipt. The file is gated
// on size and content type before any upload is attempted.
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	contentType := file.Header.Get("Content-Type")
	if err := h.receiptService.ValidateReceipt(file.Size, contentType); err != nil {
		if errors.Is(err, service.ErrReceiptTooLarge) {
			return NewPayloadTooLargeError(c, "File too large. Maximum size is 5MB")
		}
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: "Invalid file type. Please select an image file"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	entry, err := h.receiptService.Attach(c.Request().Context(), id, file.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		if errors.Is(err, service.ErrReceiptTooLarge) {
			return NewPayloadTooLargeError(c, "File too large. Maximum size is 5MB")
		}
		if errors.Is(err, service.ErrReceiptNotImage) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid file type. Please select an image file"},
			})
		}
		log.Error().Err(err).Str("entry_id", id.String()).Msg("Failed to upload receipt")
		return NewInternalError(c, "Failed to upload receipt")
	}

	log.Info().
		Str("entry_id", id.String()).
		Str("filename", file.Filename).
		Msg("Receipt uploaded")

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}
