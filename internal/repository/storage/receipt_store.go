package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ReceiptStore defines the interface for receipt blob storage
type ReceiptStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	PublicURL(objectPath string) string
}

// ObjectPath builds the storage key for a receipt image:
// receipts/{entryID}/{unix-nano}.{ext}
func ObjectPath(entryID string, ext string) string {
	return fmt.Sprintf("receipts/%s/%d%s", entryID, time.Now().UnixNano(), ext)
}
