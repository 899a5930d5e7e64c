// Package reconcile funde o payload bruto de extração com os valores
// confirmados pelo usuário, produzindo o resumo autoritativo da nota e o
// sinal de divergência de parcelamento.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
)

// DefaultCategory é a categoria atribuída quando o usuário não informa uma.
const DefaultCategory = "Outros"

// installmentTolerance é a tolerância absoluta em moeda para a soma das
// parcelas contra o total. Constante fixa, não configurável; a fronteira é
// inclusiva (diferença de exatamente 0.05 não é divergência).
var installmentTolerance = decimal.NewFromFloat(0.05)

// ConfirmedFields são os valores corrigidos/confirmados pelo usuário.
// Ponteiros distinguem "não informado" de "zerado de propósito".
type ConfirmedFields struct {
	MerchantName *string
	CNPJ         *string
	Date         *string
	TotalAmount  *decimal.Decimal
	Category     *string
	Notes        *string
	Installments []entity.Installment
}

// Result é a saída da reconciliação: o resumo final e o sinal de divergência.
// Mismatch é consultivo; nunca bloqueia uma transição.
type Result struct {
	Summary         entity.ReceiptSummary
	MerchantName    string
	CNPJ            string
	Date            string
	TotalAmount     decimal.Decimal
	Category        string
	Notes           string
	Installments    []entity.Installment
	Mismatch        bool
	InstallmentsSum decimal.Decimal
}

// Reconcile aplica as regras de fusão:
//   - total efetivo = valor manual se presente, senão o detectado pela extração;
//   - categoria = valor manual literal (string nova é criação ad-hoc, não erro),
//     senão DefaultCategory;
//   - divergência quando |soma(parcelas) - total| > 0.05 e há parcelas.
func Reconcile(ocr entity.OCRData, manual ConfirmedFields) Result {
	res := Result{
		CNPJ:         ocr.CNPJDetected,
		Date:         ocr.DateDetected,
		TotalAmount:  ocr.TotalDetected,
		Category:     DefaultCategory,
		Installments: manual.Installments,
	}
	if manual.MerchantName != nil {
		res.MerchantName = *manual.MerchantName
	}
	if manual.CNPJ != nil {
		res.CNPJ = *manual.CNPJ
	}
	if manual.Date != nil {
		res.Date = *manual.Date
	}
	if manual.TotalAmount != nil {
		res.TotalAmount = *manual.TotalAmount
	}
	if manual.Category != nil && *manual.Category != "" {
		res.Category = *manual.Category
	}
	if manual.Notes != nil {
		res.Notes = *manual.Notes
	}

	if len(res.Installments) > 0 {
		sum := decimal.Zero
		for _, inst := range res.Installments {
			sum = sum.Add(inst.Amount)
		}
		res.InstallmentsSum = sum
		res.Mismatch = sum.Sub(res.TotalAmount).Abs().GreaterThan(installmentTolerance)
	}

	res.Summary = entity.ReceiptSummary{
		CNPJ:              res.CNPJ,
		Date:              res.Date,
		Total:             res.TotalAmount,
		ItemsCount:        len(ocr.ItemsDetected),
		Category:          res.Category,
		InstallmentsCount: len(res.Installments),
	}
	return res
}
