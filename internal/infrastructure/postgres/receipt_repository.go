package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptColumns = `id, user_id, user_company_name, image_url, status, created_at,
	merchant_name, cnpj, date, total_amount, category, notes,
	installments, ocr, summary, confidence_score, updated_at`

// ReceiptRepo implementação do porto ReceiptRepository sobre PostgreSQL.
// Parcelas, payload OCR e resumo vivem em colunas jsonb: são documentos
// aninhados lidos e escritos sempre juntos com a nota.
type ReceiptRepo struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository constrói o adaptador de persistência de notas.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepo {
	return &ReceiptRepo{pool: pool}
}

// ── Formas jsonb ─────────────────────────────────────────────────────────────

type installmentDoc struct {
	Number string          `json:"number"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type itemDoc struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type ocrDoc struct {
	RawText       string          `json:"raw_text,omitempty"`
	CNPJDetected  string          `json:"cnpj_detected,omitempty"`
	DateDetected  string          `json:"date_detected,omitempty"`
	TotalDetected decimal.Decimal `json:"total_detected"`
	ItemsDetected []itemDoc       `json:"items_detected,omitempty"`
}

type summaryDoc struct {
	CNPJ              string          `json:"cnpj,omitempty"`
	Date              string          `json:"date,omitempty"`
	Total             decimal.Decimal `json:"total"`
	ItemsCount        int             `json:"items_count"`
	Category          string          `json:"category,omitempty"`
	InstallmentsCount int             `json:"installments_count"`
}

func marshalDocs(r *entity.Receipt) (installments, ocr, summary []byte, err error) {
	insts := make([]installmentDoc, len(r.Installments))
	for i, inst := range r.Installments {
		insts[i] = installmentDoc(inst)
	}
	if installments, err = json.Marshal(insts); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal installments: %w", err)
	}

	items := make([]itemDoc, len(r.OCR.ItemsDetected))
	for i, it := range r.OCR.ItemsDetected {
		items[i] = itemDoc(it)
	}
	od := ocrDoc{
		RawText:       r.OCR.RawText,
		CNPJDetected:  r.OCR.CNPJDetected,
		DateDetected:  r.OCR.DateDetected,
		TotalDetected: r.OCR.TotalDetected,
		ItemsDetected: items,
	}
	if ocr, err = json.Marshal(od); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal ocr: %w", err)
	}

	sd := summaryDoc{
		CNPJ:              r.Summary.CNPJ,
		Date:              r.Summary.Date,
		Total:             r.Summary.Total,
		ItemsCount:        r.Summary.ItemsCount,
		Category:          r.Summary.Category,
		InstallmentsCount: r.Summary.InstallmentsCount,
	}
	if summary, err = json.Marshal(sd); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal summary: %w", err)
	}
	return installments, ocr, summary, nil
}

func unmarshalDocs(r *entity.Receipt, installments, ocr, summary []byte) error {
	var insts []installmentDoc
	if len(installments) > 0 {
		if err := json.Unmarshal(installments, &insts); err != nil {
			return fmt.Errorf("unmarshal installments: %w", err)
		}
	}
	if len(insts) > 0 {
		r.Installments = make([]entity.Installment, len(insts))
		for i, d := range insts {
			r.Installments[i] = entity.Installment(d)
		}
	}

	var od ocrDoc
	if len(ocr) > 0 {
		if err := json.Unmarshal(ocr, &od); err != nil {
			return fmt.Errorf("unmarshal ocr: %w", err)
		}
	}
	r.OCR = entity.OCRData{
		RawText:       od.RawText,
		CNPJDetected:  od.CNPJDetected,
		DateDetected:  od.DateDetected,
		TotalDetected: od.TotalDetected,
	}
	if len(od.ItemsDetected) > 0 {
		r.OCR.ItemsDetected = make([]entity.ReceiptItem, len(od.ItemsDetected))
		for i, d := range od.ItemsDetected {
			r.OCR.ItemsDetected[i] = entity.ReceiptItem(d)
		}
	}

	var sd summaryDoc
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &sd); err != nil {
			return fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	r.Summary = entity.ReceiptSummary{
		CNPJ:              sd.CNPJ,
		Date:              sd.Date,
		Total:             sd.Total,
		ItemsCount:        sd.ItemsCount,
		Category:          sd.Category,
		InstallmentsCount: sd.InstallmentsCount,
	}
	return nil
}

// ── Porto ────────────────────────────────────────────────────────────────────

// Create persiste uma nova nota.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	insts, ocr, summary, err := marshalDocs(receipt)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.pool.Exec(context.Background(), query,
		receipt.ID, receipt.UserID, receipt.UserCompanyName, receipt.ImageURL, receipt.Status, receipt.CreatedAt,
		receipt.MerchantName, receipt.CNPJ, receipt.Date, receipt.TotalAmount, receipt.Category, receipt.Notes,
		insts, ocr, summary, receipt.ConfidenceScore, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtém uma nota por id; nil se não existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	rec, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rec, nil
}

// Update substitui os campos mutáveis da nota. created_at nunca muda.
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	insts, ocr, summary, err := marshalDocs(receipt)
	if err != nil {
		return err
	}
	query := `
		UPDATE receipts
		SET status = $2, merchant_name = $3, cnpj = $4, date = $5, total_amount = $6,
		    category = $7, notes = $8, installments = $9, ocr = $10, summary = $11,
		    confidence_score = $12, updated_at = $13
		WHERE id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		receipt.ID, receipt.Status, receipt.MerchantName, receipt.CNPJ, receipt.Date, receipt.TotalAmount,
		receipt.Category, receipt.Notes, insts, ocr, summary,
		receipt.ConfidenceScore, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// List lista as notas do filtro, mais recentes primeiro.
func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE 1=1`
	args := []any{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.CompanyName != "" {
		args = append(args, filter.CompanyName)
		query += fmt.Sprintf(" AND user_company_name = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Delete remove a nota por id.
func (r *ReceiptRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rec entity.Receipt
	var insts, ocr, summary []byte
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.UserCompanyName, &rec.ImageURL, &rec.Status, &rec.CreatedAt,
		&rec.MerchantName, &rec.CNPJ, &rec.Date, &rec.TotalAmount, &rec.Category, &rec.Notes,
		&insts, &ocr, &summary, &rec.ConfidenceScore, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalDocs(&rec, insts, ocr, summary); err != nil {
		return nil, err
	}
	return &rec, nil
}
