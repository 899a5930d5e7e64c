package receipts

import (
	"context"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
)

// Extractor é o colaborador de extração (OCR generativo). Chamada opaca,
// possivelmente lenta e não confiável; este núcleo nunca faz retry — a
// política de retry pertence ao orquestrador chamador.
type Extractor interface {
	Analyze(ctx context.Context, document []byte, mediaType string) (*dto.ExtractionResult, error)
}

// Uploader é o colaborador de armazenamento de blobs. O núcleo guarda só a
// referência opaca devolvida, nunca os bytes.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Event é um evento de ciclo de vida entregue ao canal de notificação.
type Event struct {
	Kind      string // receipt_submitted, receipt_confirmed, receipt_reviewed, user_approved
	UserID    string
	ReceiptID string
	Detail    string
}

// Notifier entrega eventos fire-and-forget. Falha de entrega jamais desfaz
// a transição que a disparou.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}
