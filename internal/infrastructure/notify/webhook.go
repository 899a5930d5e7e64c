// Package notify entrega eventos de ciclo de vida a um relay externo
// (webhook de chat/WhatsApp). Entrega fire-and-forget: falha aqui jamais
// desfaz a transição que disparou o evento.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
)

var _ receipts.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier envia eventos como POST JSON para uma URL configurada.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier constrói o notificador; devolve nil se a URL é vazia
// (sem canal configurado).
func NewWebhookNotifier(url string) *WebhookNotifier {
	if url == "" {
		return nil
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type eventPayload struct {
	Kind      string `json:"kind"`
	UserID    string `json:"user_id,omitempty"`
	ReceiptID string `json:"receipt_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	At        string `json:"at"`
}

// Notify entrega o evento. Status >= 300 conta como falha de entrega.
func (n *WebhookNotifier) Notify(ctx context.Context, ev receipts.Event) error {
	body, err := json.Marshal(eventPayload{
		Kind:      ev.Kind,
		UserID:    ev.UserID,
		ReceiptID: ev.ReceiptID,
		Detail:    ev.Detail,
		At:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: HTTP %d", resp.StatusCode)
	}
	return nil
}
