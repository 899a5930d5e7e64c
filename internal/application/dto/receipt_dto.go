package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentDTO parcela da nota.
type InstallmentDTO struct {
	Number string          `json:"number"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// ReceiptItemDTO item detectado na nota.
type ReceiptItemDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// OCRDataDTO payload bruto de extração.
type OCRDataDTO struct {
	RawText       string           `json:"raw_text,omitempty"`
	CNPJDetected  string           `json:"cnpj_detected,omitempty"`
	DateDetected  string           `json:"date_detected,omitempty"`
	TotalDetected decimal.Decimal  `json:"total_detected"`
	ItemsDetected []ReceiptItemDTO `json:"items_detected,omitempty"`
}

// SummaryDTO resumo reconciliado da nota.
type SummaryDTO struct {
	CNPJ              string          `json:"cnpj,omitempty"`
	Date              string          `json:"date,omitempty"`
	Total             decimal.Decimal `json:"total"`
	ItemsCount        int             `json:"items_count"`
	Category          string          `json:"category"`
	InstallmentsCount int             `json:"installments_count"`
}

// SubmitReceiptRequest submissão de documento. Ou Image (bytes + media type,
// para upload + extração) ou Extraction já resolvida pelo chamador.
type SubmitReceiptRequest struct {
	ImageBase64 string `json:"image_base64,omitempty"`
	MediaType   string `json:"media_type,omitempty"`

	// Extração pré-resolvida (ex.: relay de webhook que já chamou o extrator).
	Extraction *ExtractionResult `json:"extraction,omitempty"`
}

// ExtractionResult é o que o colaborador de extração devolve.
type ExtractionResult struct {
	MerchantName    string           `json:"merchant_name"`
	OCR             OCRDataDTO       `json:"ocr"`
	Summary         SummaryDTO       `json:"summary"`
	Installments    []InstallmentDTO `json:"installments"`
	ConfidenceScore float64          `json:"confidence_score"`
}

// ConfirmReceiptRequest valores confirmados/corrigidos pelo remetente.
type ConfirmReceiptRequest struct {
	MerchantName *string          `json:"merchant_name"`
	CNPJ         *string          `json:"cnpj"`
	Date         *string          `json:"date"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Category     *string          `json:"category"`
	Notes        *string          `json:"notes"`
	Installments []InstallmentDTO `json:"installments"`
}

// ReceiptPatch edição administrativa. Status só muda se o patch pedir uma
// transição legal; caso contrário permanece.
type ReceiptPatch struct {
	MerchantName *string          `json:"merchant_name"`
	CNPJ         *string          `json:"cnpj"`
	Date         *string          `json:"date"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Category     *string          `json:"category"`
	Notes        *string          `json:"notes"`
	Status       *string          `json:"status"`
}

// ReviewRequest desfecho contábil de uma nota confirmada.
type ReviewRequest struct {
	Outcome string `json:"outcome"` // processed | rejected
}

// BulkReviewRequest aplica Review a vários ids, cada um independente.
type BulkReviewRequest struct {
	IDs     []string `json:"ids"`
	Outcome string   `json:"outcome"`
}

// BulkReviewResult resultado por id; sucesso parcial é reportado, nunca
// tudo-ou-nada.
type BulkReviewResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ChecklistStatsResponse ritmo mensal de envio de documentos.
type ChecklistStatsResponse struct {
	TotalDocsExpected   int        `json:"total_docs_expected"`
	TotalDocsSent       int        `json:"total_docs_sent"`
	LastUploadDate      *time.Time `json:"last_upload_date"`
	DaysSinceLastUpload int        `json:"days_since_last_upload"`
	Status              string     `json:"status"` // on_track | warning | behind
}

// ReceiptResponse representação externa de uma nota.
type ReceiptResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	UserCompanyName string           `json:"user_company_name"`
	ImageURL        string           `json:"image_url"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	MerchantName    string           `json:"merchant_name,omitempty"`
	CNPJ            string           `json:"cnpj,omitempty"`
	Date            string           `json:"date,omitempty"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Category        string           `json:"category,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Installments    []InstallmentDTO `json:"installments,omitempty"`
	OCR             OCRDataDTO       `json:"ocr"`
	Summary         SummaryDTO       `json:"summary"`
	ConfidenceScore float64          `json:"confidence_score"`
	// Mismatch é consultivo, calculado na confirmação; nunca bloqueia.
	Mismatch bool `json:"mismatch,omitempty"`
}
