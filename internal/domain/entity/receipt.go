package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida de uma nota. processed e rejected são terminais.
const (
	ReceiptPendingConfirmation = "pending_confirmation"
	ReceiptConfirmed           = "confirmed"
	ReceiptProcessed           = "processed"
	ReceiptRejected            = "rejected"
)

// CanTransitionReceipt valida a máquina de estados da nota:
// pending_confirmation→confirmed→{processed,rejected}. Sem salto direto
// de pending_confirmation para processed.
func CanTransitionReceipt(from, to string) bool {
	switch from {
	case ReceiptPendingConfirmation:
		return to == ReceiptConfirmed
	case ReceiptConfirmed:
		return to == ReceiptProcessed || to == ReceiptRejected
	}
	return false
}

// ReceiptTerminal indica se o status encerra o ciclo de vida.
func ReceiptTerminal(status string) bool {
	return status == ReceiptProcessed || status == ReceiptRejected
}

// Installment é uma parcela (duplicata) da nota.
type Installment struct {
	Number string
	Date   string // YYYY-MM-DD como impresso na nota
	Amount decimal.Decimal
}

// ReceiptItem é um item detectado na nota.
type ReceiptItem struct {
	Description string
	Amount      decimal.Decimal
}

// OCRData é o payload bruto de extração, guardado como veio do extrator.
type OCRData struct {
	RawText       string
	CNPJDetected  string
	DateDetected  string
	TotalDetected decimal.Decimal
	ItemsDetected []ReceiptItem
}

// ReceiptSummary espelha os campos confirmados após a reconciliação.
type ReceiptSummary struct {
	CNPJ              string
	Date              string
	Total             decimal.Decimal
	ItemsCount        int
	Category          string
	InstallmentsCount int
}

// Receipt é um documento de despesa submetido e seus dados extraídos/confirmados.
type Receipt struct {
	ID              string
	UserID          string // quem submeteu
	UserCompanyName string
	ImageURL        string // referência opaca; os bytes não pertencem a este núcleo
	Status          string
	CreatedAt       time.Time // imutável após a criação

	MerchantName string
	CNPJ         string
	Date         string
	TotalAmount  decimal.Decimal
	Category     string
	Notes        string

	Installments []Installment
	OCR          OCRData
	Summary      ReceiptSummary

	// ConfidenceScore ∈ [0,1], carregado da extração sem alteração.
	// Puramente informativo: nenhuma transição depende dele.
	ConfidenceScore float64

	UpdatedAt time.Time
}
