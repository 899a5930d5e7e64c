// Package receipts implementa o ciclo de vida da nota de despesa:
// submissão com extração, confirmação com reconciliação, revisão contábil,
// edição e exclusão, tudo condicionado ao conjunto de permissões do ator.
package receipts

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/reconcile"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// UseCase orquestra o ciclo de vida da nota contra os portos injetados.
type UseCase struct {
	receiptRepo  repository.ReceiptRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	extractor    Extractor
	uploader     Uploader
	notifier     Notifier
	log          zerolog.Logger
}

// New constrói o gerenciador. extractor/uploader/notifier podem ser nil em
// cenários que só usam payload pré-extraído e sem canal de notificação.
func New(
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	extractor Extractor,
	uploader Uploader,
	notifier Notifier,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		receiptRepo:  receiptRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		extractor:    extractor,
		uploader:     uploader,
		notifier:     notifier,
		log:          log,
	}
}

// Submit cria uma nota em pending_confirmation a partir de um documento.
// Bytes presentes sempre viram blob persistido, mesmo quando a extração veio
// pré-resolvida; o extrator só roda quando não veio. Sem retry: a política de
// retry é do chamador. Campos extraídos são copiados para o topo da nota e
// para o payload ocr.
func (uc *UseCase) Submit(ctx context.Context, actor *entity.User, in dto.SubmitReceiptRequest) (*dto.ReceiptResponse, error) {
	extraction := in.Extraction
	imageURL := ""

	if in.ImageBase64 != "" {
		if uc.uploader == nil {
			return nil, fmt.Errorf("submit: uploader não configurado: %w", domain.ErrStorageUnavailable)
		}
		raw, err := base64.StdEncoding.DecodeString(in.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("submit: base64 inválido: %w", domain.ErrExtractionFailed)
		}
		key := fmt.Sprintf("receipts/%s/%s", actor.ID, uuid.New().String())
		imageURL, err = uc.uploader.Upload(ctx, key, raw, in.MediaType)
		if err != nil {
			return nil, err
		}
		if extraction == nil {
			if uc.extractor == nil {
				return nil, fmt.Errorf("submit: extrator não configurado: %w", domain.ErrExtractionFailed)
			}
			extraction, err = uc.extractor.Analyze(ctx, raw, in.MediaType)
			if err != nil {
				return nil, err
			}
		}
	} else if extraction == nil {
		return nil, fmt.Errorf("submit: documento ausente: %w", domain.ErrExtractionFailed)
	}

	now := time.Now()
	receipt := &entity.Receipt{
		ID:              uuid.New().String(),
		UserID:          actor.ID,
		UserCompanyName: actor.CompanyName,
		ImageURL:        imageURL,
		Status:          entity.ReceiptPendingConfirmation,
		CreatedAt:       now,
		UpdatedAt:       now,
		MerchantName:    extraction.MerchantName,
		CNPJ:            extraction.OCR.CNPJDetected,
		Date:            extraction.OCR.DateDetected,
		TotalAmount:     extraction.OCR.TotalDetected,
		Installments:    installmentsFromDTO(extraction.Installments),
		OCR:             ocrFromDTO(extraction.OCR),
		ConfidenceScore: extraction.ConfidenceScore,
	}
	if !extraction.Summary.Total.IsZero() {
		receipt.TotalAmount = extraction.Summary.Total
	}
	if extraction.Summary.CNPJ != "" {
		receipt.CNPJ = extraction.Summary.CNPJ
	}
	if extraction.Summary.Date != "" {
		receipt.Date = extraction.Summary.Date
	}
	if extraction.Summary.Category != "" {
		receipt.Category = extraction.Summary.Category
	}

	if err := uc.receiptRepo.Create(receipt); err != nil {
		return nil, err
	}
	uc.emit(ctx, Event{Kind: "receipt_submitted", UserID: actor.ID, ReceiptID: receipt.ID})
	return toReceiptResponse(receipt, false), nil
}

// Confirm reconcilia extração e valores confirmados, grava o resumo e avança
// para confirmed. Legal apenas a partir de pending_confirmation. O sinal de
// divergência de parcelas volta ao chamador e nunca bloqueia a transição.
func (uc *UseCase) Confirm(ctx context.Context, actor *entity.User, receiptID string, in dto.ConfirmReceiptRequest) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	// Confirma o remetente; contas com edit_receipts também podem corrigir
	// e confirmar em nome dele.
	if receipt.UserID != actor.ID && !actor.Permissions.Has(entity.PermEditReceipts) {
		return nil, domain.ErrForbidden
	}
	if receipt.Status != entity.ReceiptPendingConfirmation {
		return nil, domain.ErrInvalidTransition
	}

	res := reconcile.Reconcile(receipt.OCR, confirmedFromDTO(in, receipt))
	receipt.MerchantName = res.MerchantName
	receipt.CNPJ = res.CNPJ
	receipt.Date = res.Date
	receipt.TotalAmount = res.TotalAmount
	receipt.Category = res.Category
	receipt.Notes = res.Notes
	receipt.Installments = res.Installments
	receipt.Summary = res.Summary
	receipt.Status = entity.ReceiptConfirmed
	receipt.UpdatedAt = time.Now()

	if err := uc.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}
	uc.ensureCategory(receipt, res.Category)
	uc.emit(ctx, Event{Kind: "receipt_confirmed", UserID: actor.ID, ReceiptID: receipt.ID})
	return toReceiptResponse(receipt, res.Mismatch), nil
}

// Review aplica o desfecho contábil: processed ou rejected, ambos terminais.
// Exige approve_receipts e status atual confirmed.
func (uc *UseCase) Review(ctx context.Context, actor *entity.User, receiptID, outcome string) (*dto.ReceiptResponse, error) {
	if !actor.Permissions.Has(entity.PermApproveReceipts) {
		return nil, domain.ErrForbidden
	}
	if outcome != entity.ReceiptProcessed && outcome != entity.ReceiptRejected {
		return nil, domain.ErrInvalidTransition
	}
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionReceipt(receipt.Status, outcome) {
		return nil, domain.ErrInvalidTransition
	}
	receipt.Status = outcome
	receipt.UpdatedAt = time.Now()
	if err := uc.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}
	uc.emit(ctx, Event{Kind: "receipt_reviewed", UserID: actor.ID, ReceiptID: receipt.ID, Detail: outcome})
	return toReceiptResponse(receipt, false), nil
}

// BulkReview aplica Review a cada id de forma independente: a falha em um id
// não aborta os demais; o resultado é reportado por id.
func (uc *UseCase) BulkReview(ctx context.Context, actor *entity.User, ids []string, outcome string) []dto.BulkReviewResult {
	results := make([]dto.BulkReviewResult, 0, len(ids))
	for _, id := range ids {
		_, err := uc.Review(ctx, actor, id, outcome)
		r := dto.BulkReviewResult{ID: id, OK: err == nil}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

// Edit funde um patch na nota sem mudar o status, salvo quando o patch pede
// explicitamente uma transição legal. Exige edit_receipts; notas terminais
// não são editáveis. CreatedAt nunca muda.
func (uc *UseCase) Edit(actor *entity.User, receiptID string, patch dto.ReceiptPatch) (*dto.ReceiptResponse, error) {
	if !actor.Permissions.Has(entity.PermEditReceipts) {
		return nil, domain.ErrForbidden
	}
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if entity.ReceiptTerminal(receipt.Status) {
		return nil, domain.ErrInvalidTransition
	}

	if patch.Status != nil && *patch.Status != receipt.Status {
		if !entity.CanTransitionReceipt(receipt.Status, *patch.Status) {
			return nil, domain.ErrInvalidTransition
		}
		receipt.Status = *patch.Status
	}
	if patch.MerchantName != nil {
		receipt.MerchantName = *patch.MerchantName
	}
	if patch.CNPJ != nil {
		receipt.CNPJ = *patch.CNPJ
	}
	if patch.Date != nil {
		receipt.Date = *patch.Date
	}
	if patch.TotalAmount != nil {
		receipt.TotalAmount = *patch.TotalAmount
	}
	if patch.Category != nil {
		receipt.Category = *patch.Category
	}
	if patch.Notes != nil {
		receipt.Notes = *patch.Notes
	}
	receipt.UpdatedAt = time.Now()

	if err := uc.receiptRepo.Update(receipt); err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt, false), nil
}

// Remove exclui a nota em qualquer status (terminalidade não bloqueia a
// exclusão). Exige delete_receipts.
func (uc *UseCase) Remove(actor *entity.User, receiptID string) error {
	if !actor.Permissions.Has(entity.PermDeleteReceipts) {
		return domain.ErrForbidden
	}
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return domain.ErrNotFound
	}
	return uc.receiptRepo.Delete(receiptID)
}

// List devolve as notas visíveis ao ator, mais recentes primeiro.
// Contadores e admin veem tudo; business vê a própria empresa. Contas
// upload_only não têm visão financeira: apenas enviam e confirmam.
func (uc *UseCase) List(actor *entity.User, filter repository.ReceiptFilter) ([]*dto.ReceiptResponse, error) {
	if actor.Permissions.Has(entity.PermUploadOnly) || !actor.Permissions.Has(entity.PermViewFinancials) {
		return nil, domain.ErrForbidden
	}
	if actor.IsBusiness() {
		filter.CompanyName = actor.CompanyName
	}
	list, err := uc.receiptRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceiptResponse, len(list))
	for i, r := range list {
		out[i] = toReceiptResponse(r, false)
	}
	return out, nil
}

// Get devolve uma nota pelo id, com o mesmo escopo de visibilidade de List,
// exceto que o remetente sempre enxerga as próprias notas.
func (uc *UseCase) Get(actor *entity.User, receiptID string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if receipt.UserID != actor.ID && actor.IsBusiness() && receipt.UserCompanyName != actor.CompanyName {
		return nil, domain.ErrForbidden
	}
	return toReceiptResponse(receipt, false), nil
}

// Limiares do checklist mensal de documentos.
const (
	checklistDocsExpected = 30
	checklistWarningDays  = 5
	checklistBehindDays   = 10
)

// ChecklistStats deriva o ritmo de envio de documentos: quantos chegaram no
// mês corrente, quando foi o último envio e em que faixa a empresa está
// (on_track, warning acima de 5 dias parada, behind acima de 10). Business vê
// a própria empresa; contadores e admin veem o agregado.
func (uc *UseCase) ChecklistStats(actor *entity.User) (*dto.ChecklistStatsResponse, error) {
	var filter repository.ReceiptFilter
	if actor.IsBusiness() {
		filter.CompanyName = actor.CompanyName
	}
	list, err := uc.receiptRepo.List(filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &dto.ChecklistStatsResponse{
		TotalDocsExpected: checklistDocsExpected,
		Status:            "on_track",
	}
	for _, r := range list {
		if r.CreatedAt.Month() == now.Month() && r.CreatedAt.Year() == now.Year() {
			out.TotalDocsSent++
		}
	}
	if len(list) > 0 {
		// List devolve mais recentes primeiro.
		last := list[0].CreatedAt
		out.LastUploadDate = &last
		out.DaysSinceLastUpload = int(math.Ceil(now.Sub(last).Hours() / 24))
		if out.DaysSinceLastUpload > checklistWarningDays {
			out.Status = "warning"
		}
		if out.DaysSinceLastUpload > checklistBehindDays {
			out.Status = "behind"
		}
	}
	return out, nil
}

// ensureCategory registra categoria ad-hoc no conjunto do escritório do
// remetente. Falha aqui não desfaz a confirmação: é registrada e seguida.
func (uc *UseCase) ensureCategory(receipt *entity.Receipt, name string) {
	if uc.categoryRepo == nil || name == "" {
		return
	}
	for _, def := range entity.DefaultCategories {
		if def == name {
			return
		}
	}
	submitter, err := uc.userRepo.GetByID(receipt.UserID)
	if err != nil || submitter == nil || submitter.AccountingFirmID == "" {
		return
	}
	firmID := submitter.AccountingFirmID
	existing, err := uc.categoryRepo.GetByFirmAndName(firmID, name)
	if err != nil || existing != nil {
		return
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		Name:      name,
		AdHoc:     true,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		uc.log.Warn().Err(err).Str("category", name).Msg("registro de categoria ad-hoc falhou")
	}
}

// emit entrega o evento fire-and-forget: falha de notificação nunca desfaz
// a transição que a disparou.
func (uc *UseCase) emit(ctx context.Context, ev Event) {
	if uc.notifier == nil {
		return
	}
	go func() {
		if err := uc.notifier.Notify(context.WithoutCancel(ctx), ev); err != nil {
			uc.log.Warn().Err(err).Str("kind", ev.Kind).Str("receipt_id", ev.ReceiptID).Msg("notificação falhou")
		}
	}()
}

// ── Conversões DTO ↔ entidade ────────────────────────────────────────────────

func installmentsFromDTO(in []dto.InstallmentDTO) []entity.Installment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Installment, len(in))
	for i, d := range in {
		out[i] = entity.Installment{Number: d.Number, Date: d.Date, Amount: d.Amount}
	}
	return out
}

func installmentsToDTO(in []entity.Installment) []dto.InstallmentDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.InstallmentDTO, len(in))
	for i, e := range in {
		out[i] = dto.InstallmentDTO{Number: e.Number, Date: e.Date, Amount: e.Amount}
	}
	return out
}

func ocrFromDTO(in dto.OCRDataDTO) entity.OCRData {
	items := make([]entity.ReceiptItem, len(in.ItemsDetected))
	for i, d := range in.ItemsDetected {
		items[i] = entity.ReceiptItem{Description: d.Description, Amount: d.Amount}
	}
	if len(items) == 0 {
		items = nil
	}
	return entity.OCRData{
		RawText:       in.RawText,
		CNPJDetected:  in.CNPJDetected,
		DateDetected:  in.DateDetected,
		TotalDetected: in.TotalDetected,
		ItemsDetected: items,
	}
}

func ocrToDTO(in entity.OCRData) dto.OCRDataDTO {
	items := make([]dto.ReceiptItemDTO, len(in.ItemsDetected))
	for i, e := range in.ItemsDetected {
		items[i] = dto.ReceiptItemDTO{Description: e.Description, Amount: e.Amount}
	}
	if len(items) == 0 {
		items = nil
	}
	return dto.OCRDataDTO{
		RawText:       in.RawText,
		CNPJDetected:  in.CNPJDetected,
		DateDetected:  in.DateDetected,
		TotalDetected: in.TotalDetected,
		ItemsDetected: items,
	}
}

func confirmedFromDTO(in dto.ConfirmReceiptRequest, receipt *entity.Receipt) reconcile.ConfirmedFields {
	fields := reconcile.ConfirmedFields{
		MerchantName: in.MerchantName,
		CNPJ:         in.CNPJ,
		Date:         in.Date,
		TotalAmount:  in.TotalAmount,
		Category:     in.Category,
		Notes:        in.Notes,
		Installments: installmentsFromDTO(in.Installments),
	}
	if fields.MerchantName == nil && receipt.MerchantName != "" {
		fields.MerchantName = &receipt.MerchantName
	}
	if fields.Installments == nil {
		fields.Installments = receipt.Installments
	}
	return fields
}

func toReceiptResponse(r *entity.Receipt, mismatch bool) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserCompanyName: r.UserCompanyName,
		ImageURL:        r.ImageURL,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		MerchantName:    r.MerchantName,
		CNPJ:            r.CNPJ,
		Date:            r.Date,
		TotalAmount:     r.TotalAmount,
		Category:        r.Category,
		Notes:           r.Notes,
		Installments:    installmentsToDTO(r.Installments),
		OCR:             ocrToDTO(r.OCR),
		Summary: dto.SummaryDTO{
			CNPJ:              r.Summary.CNPJ,
			Date:              r.Summary.Date,
			Total:             r.Summary.Total,
			ItemsCount:        r.Summary.ItemsCount,
			Category:          r.Summary.Category,
			InstallmentsCount: r.Summary.InstallmentsCount,
		},
		ConfidenceScore: r.ConfidenceScore,
		Mismatch:        mismatch,
	}
}
