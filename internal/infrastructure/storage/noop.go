package storage

import (
	"context"
	"fmt"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
)

var _ receipts.Uploader = (*NoopUploader)(nil)

// NoopUploader sinaliza que não há backend de blobs configurado.
type NoopUploader struct{}

// Upload sempre falha com ErrStorageUnavailable.
func (NoopUploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	return "", fmt.Errorf("storage: uploader não configurado: %w", domain.ErrStorageUnavailable)
}
