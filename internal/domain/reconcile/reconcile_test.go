package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/reconcile"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Divergência de parcelamento: fronteira da tolerância de 0.05 é inclusiva.
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_ParcelasDentroDaTolerancia(t *testing.T) {
	cases := []struct {
		name     string
		total    string
		parcelas []string
		mismatch bool
	}{
		{"soma exata", "100.00", []string{"50.00", "50.00"}, false},
		{"diferenca exatamente 0.05", "100.00", []string{"50.00", "50.05"}, false},
		{"diferenca 0.06 acima", "100.00", []string{"50.00", "50.06"}, true},
		{"diferenca 0.06 abaixo", "100.00", []string{"49.94", "50.00"}, true},
		{"parcela unica divergente", "250.00", []string{"200.00"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var insts []entity.Installment
			for i, v := range tc.parcelas {
				insts = append(insts, entity.Installment{
					Number: string(rune('1' + i)),
					Date:   "2025-06-01",
					Amount: dec(v),
				})
			}
			res := reconcile.Reconcile(entity.OCRData{}, reconcile.ConfirmedFields{
				TotalAmount:  decPtr(tc.total),
				Installments: insts,
			})
			assert.Equal(t, tc.mismatch, res.Mismatch)
		})
	}
}

func TestReconcile_SemParcelasNaoSinalizaDivergencia(t *testing.T) {
	res := reconcile.Reconcile(
		entity.OCRData{TotalDetected: dec("250.00")},
		reconcile.ConfirmedFields{},
	)
	assert.False(t, res.Mismatch)
	assert.True(t, res.TotalAmount.Equal(dec("250.00")), "total deve vir da extração")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fusão manual x extração e categoria ad-hoc.
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_TotalManualPrevalece(t *testing.T) {
	res := reconcile.Reconcile(
		entity.OCRData{TotalDetected: dec("199.90")},
		reconcile.ConfirmedFields{TotalAmount: decPtr("210.00")},
	)
	assert.True(t, res.TotalAmount.Equal(dec("210.00")))
	assert.True(t, res.Summary.Total.Equal(dec("210.00")))
}

func TestReconcile_CategoriaAdHocEAceitaLiteralmente(t *testing.T) {
	res := reconcile.Reconcile(entity.OCRData{}, reconcile.ConfirmedFields{
		Category: strPtr("Transporte Aéreo Executivo"),
	})
	assert.Equal(t, "Transporte Aéreo Executivo", res.Category)
	assert.Equal(t, "Transporte Aéreo Executivo", res.Summary.Category)
}

func TestReconcile_CategoriaPadraoQuandoAusente(t *testing.T) {
	res := reconcile.Reconcile(entity.OCRData{}, reconcile.ConfirmedFields{})
	assert.Equal(t, reconcile.DefaultCategory, res.Category)

	// String vazia conta como ausente, não como categoria literal.
	res = reconcile.Reconcile(entity.OCRData{}, reconcile.ConfirmedFields{Category: strPtr("")})
	assert.Equal(t, reconcile.DefaultCategory, res.Category)
}

func TestReconcile_CamposDetectadosPreenchemAusencias(t *testing.T) {
	ocr := entity.OCRData{
		CNPJDetected:  "12345678000199",
		DateDetected:  "2025-05-20",
		TotalDetected: dec("88.40"),
		ItemsDetected: []entity.ReceiptItem{{Description: "Almoço", Amount: dec("88.40")}},
	}
	res := reconcile.Reconcile(ocr, reconcile.ConfirmedFields{
		CNPJ: strPtr("99887766000155"),
	})
	require.Equal(t, "99887766000155", res.CNPJ, "CNPJ manual prevalece")
	assert.Equal(t, "2025-05-20", res.Date)
	assert.Equal(t, 1, res.Summary.ItemsCount)
	assert.Equal(t, 0, res.Summary.InstallmentsCount)
}
