package receipts_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dublês dos colaboradores externos
// ──────────────────────────────────────────────────────────────────────────────

type stubExtractor struct {
	result *dto.ExtractionResult
	err    error
	calls  int
}

func (s *stubExtractor) Analyze(ctx context.Context, document []byte, mediaType string) (*dto.ExtractionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url + "/" + key, nil
}

type failingNotifier struct{}

func (failingNotifier) Notify(ctx context.Context, ev receipts.Event) error {
	return errors.New("canal fora do ar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	uc         *receipts.UseCase
	users      *memory.UserRepo
	recs       *memory.ReceiptRepo
	cats       *memory.CategoryRepo
	owner      *entity.User // business, view+edit
	employee   *entity.User // business, upload_only
	accountant *entity.User // accounting, todas as permissões
}

func newEnv(t *testing.T) *env {
	t.Helper()
	users := memory.NewUserRepository()
	recs := memory.NewReceiptRepository()
	cats := memory.NewCategoryRepository()

	now := time.Now()
	owner := &entity.User{
		ID: "owner", Name: "Carlos", Email: "owner@x.com",
		Role: entity.RoleBusiness, SubRole: entity.SubRoleOwner, Status: entity.StatusActive,
		Permissions:      entity.PermissionSet{entity.PermViewFinancials, entity.PermEditReceipts},
		AccountingFirmID: "firm-1", CompanyName: "Empresa Exemplo LTDA",
		CreatedAt: now, UpdatedAt: now,
	}
	employee := &entity.User{
		ID: "employee", Name: "João", Email: "emp@x.com",
		Role: entity.RoleBusiness, SubRole: entity.SubRoleEmployee, Status: entity.StatusActive,
		Permissions:      entity.PermissionSet{entity.PermUploadOnly},
		AccountingFirmID: "firm-1", CompanyName: "Empresa Exemplo LTDA",
		CreatedAt: now, UpdatedAt: now,
	}
	accountant := &entity.User{
		ID: "firm-1", Name: "Ana", Email: "acc@x.com",
		Role: entity.RoleAccounting, SubRole: entity.SubRoleManager, Status: entity.StatusActive,
		Permissions: entity.PermissionSet{
			entity.PermViewFinancials, entity.PermEditReceipts,
			entity.PermDeleteReceipts, entity.PermApproveReceipts, entity.PermManageUsers,
		},
		CreatedAt: now, UpdatedAt: now,
	}
	for _, u := range []*entity.User{owner, employee, accountant} {
		require.NoError(t, users.Create(u))
	}

	uc := receipts.New(recs, users, cats, nil, nil, nil, zerolog.Nop())
	return &env{uc: uc, users: users, recs: recs, cats: cats, owner: owner, employee: employee, accountant: accountant}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// extração típica de uma nota de combustível parcelada
func sampleExtraction() *dto.ExtractionResult {
	return &dto.ExtractionResult{
		MerchantName: "Posto Shell",
		OCR: dto.OCRDataDTO{
			RawText:       "POSTO SHELL LTDA ...",
			CNPJDetected:  "12345678000199",
			DateDetected:  "2026-08-10",
			TotalDetected: dec("300.00"),
		},
		Installments: []dto.InstallmentDTO{
			{Number: "1/2", Date: "2026-09-10", Amount: dec("150.00")},
			{Number: "2/2", Date: "2026-10-10", Amount: dec("150.00")},
		},
		ConfidenceScore: 0.93,
	}
}

func (e *env) submit(t *testing.T) *dto.ReceiptResponse {
	t.Helper()
	out, err := e.uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		Extraction: sampleExtraction(),
	})
	require.NoError(t, err)
	return out
}

func (e *env) confirm(t *testing.T, id string) *dto.ReceiptResponse {
	t.Helper()
	out, err := e.uc.Confirm(context.Background(), e.owner, id, dto.ConfirmReceiptRequest{})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ComExtracaoPreResolvida(t *testing.T) {
	e := newEnv(t)

	out := e.submit(t)

	assert.Equal(t, entity.ReceiptPendingConfirmation, out.Status)
	assert.Equal(t, "Posto Shell", out.MerchantName)
	assert.Equal(t, "12345678000199", out.CNPJ)
	assert.True(t, out.TotalAmount.Equal(dec("300.00")))
	assert.Len(t, out.Installments, 2)
	assert.Equal(t, e.owner.CompanyName, out.UserCompanyName)
}

func TestSubmit_ComDocumento_UploadEExtracao(t *testing.T) {
	users := memory.NewUserRepository()
	recs := memory.NewReceiptRepository()
	extractor := &stubExtractor{result: sampleExtraction()}
	uploader := &stubUploader{url: "https://cdn.example"}
	e := newEnv(t)
	uc := receipts.New(recs, users, nil, extractor, uploader, nil, zerolog.Nop())

	out, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		MediaType:   "image/jpeg",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls)
	assert.Contains(t, out.ImageURL, "https://cdn.example/receipts/owner/")
	assert.Equal(t, entity.ReceiptPendingConfirmation, out.Status)
}

func TestSubmit_FalhaDeExtracao(t *testing.T) {
	e := newEnv(t)
	extractor := &stubExtractor{err: domain.ErrExtractionFailed}
	uc := receipts.New(memory.NewReceiptRepository(), e.users, nil, extractor, &stubUploader{url: "u"}, nil, zerolog.Nop())

	_, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("x")),
		MediaType:   "image/png",
	})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestSubmit_StorageIndisponivel(t *testing.T) {
	e := newEnv(t)
	uploader := &stubUploader{err: domain.ErrStorageUnavailable}
	uc := receipts.New(memory.NewReceiptRepository(), e.users, nil, &stubExtractor{}, uploader, nil, zerolog.Nop())

	_, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("x")),
		MediaType:   "image/png",
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSubmit_SemExtratorConfigurado(t *testing.T) {
	e := newEnv(t)
	uc := receipts.New(memory.NewReceiptRepository(), e.users, nil, nil, &stubUploader{url: "https://cdn.example"}, nil, zerolog.Nop())

	_, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		MediaType:   "image/jpeg",
	})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed, "documento sem extrator vira erro tipado")
}

func TestSubmit_SemUploaderConfigurado(t *testing.T) {
	e := newEnv(t)
	uc := receipts.New(memory.NewReceiptRepository(), e.users, nil, &stubExtractor{result: sampleExtraction()}, nil, nil, zerolog.Nop())

	_, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		MediaType:   "image/jpeg",
	})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSubmit_ExtracaoPreResolvidaComDocumentoGuardaBlob(t *testing.T) {
	e := newEnv(t)
	extractor := &stubExtractor{result: sampleExtraction()}
	uploader := &stubUploader{url: "https://cdn.example"}
	uc := receipts.New(memory.NewReceiptRepository(), e.users, nil, extractor, uploader, nil, zerolog.Nop())

	out, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		ImageBase64: base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		MediaType:   "image/jpeg",
		Extraction:  sampleExtraction(),
	})
	require.NoError(t, err)

	assert.Contains(t, out.ImageURL, "https://cdn.example/receipts/owner/")
	assert.Equal(t, 0, extractor.calls, "extração pré-resolvida não chama o extrator")
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_ManualPrevaleceSobreExtraido(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	total := dec("310.50")
	merchant := "Posto Shell Centro"
	out, err := e.uc.Confirm(context.Background(), e.owner, rec.ID, dto.ConfirmReceiptRequest{
		MerchantName: &merchant,
		TotalAmount:  &total,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptConfirmed, out.Status)
	assert.Equal(t, "Posto Shell Centro", out.MerchantName)
	assert.True(t, out.TotalAmount.Equal(total), "valor manual prevalece")
	assert.Equal(t, "12345678000199", out.Summary.CNPJ, "campo ausente cai no detectado")
	assert.Equal(t, "Outros", out.Category, "sem categoria informada cai no padrão")
}

func TestConfirm_DivergenciaDeParcelasNaoBloqueia(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	// parcelas somam 300, total confirmado 300.10: fora da tolerância
	total := dec("300.10")
	out, err := e.uc.Confirm(context.Background(), e.owner, rec.ID, dto.ConfirmReceiptRequest{
		TotalAmount: &total,
	})
	require.NoError(t, err)

	assert.True(t, out.Mismatch, "divergência vira sinal consultivo")
	assert.Equal(t, entity.ReceiptConfirmed, out.Status, "a transição acontece mesmo assim")
}

func TestConfirm_CategoriaNovaViraAdHoc(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	categoria := "Assinaturas de Software"
	_, err := e.uc.Confirm(context.Background(), e.owner, rec.ID, dto.ConfirmReceiptRequest{
		Category: &categoria,
	})
	require.NoError(t, err)

	cat, err := e.cats.GetByFirmAndName("firm-1", "Assinaturas de Software")
	require.NoError(t, err)
	require.NotNil(t, cat, "categoria inédita entra no conjunto do escritório")
	assert.True(t, cat.AdHoc)
}

func TestConfirm_SemParcelasNaoCalculaDivergencia(t *testing.T) {
	e := newEnv(t)

	out, err := e.uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		Extraction: &dto.ExtractionResult{
			MerchantName:    "Uber",
			OCR:             dto.OCRDataDTO{TotalDetected: dec("250.00")},
			ConfidenceScore: 0.88,
		},
	})
	require.NoError(t, err)

	categoria := "Transporte"
	conf, err := e.uc.Confirm(context.Background(), e.owner, out.ID, dto.ConfirmReceiptRequest{
		Category: &categoria,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptConfirmed, conf.Status)
	assert.Equal(t, "Transporte", conf.Category)
	assert.True(t, conf.TotalAmount.Equal(dec("250.00")))
	assert.False(t, conf.Mismatch)
	assert.Equal(t, 0.88, conf.ConfidenceScore, "confiança atravessa sem efeito")
}

func TestConfirm_SoRemetenteOuEditor(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	// o funcionário upload_only não confirma nota alheia
	_, err := e.uc.Confirm(context.Background(), e.employee, rec.ID, dto.ConfirmReceiptRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// o contador com edit_receipts confirma em nome do remetente
	_, err = e.uc.Confirm(context.Background(), e.accountant, rec.ID, dto.ConfirmReceiptRequest{})
	assert.NoError(t, err)
}

func TestConfirm_SoDePendingConfirmation(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)
	e.confirm(t, rec.ID)

	_, err := e.uc.Confirm(context.Background(), e.owner, rec.ID, dto.ConfirmReceiptRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "confirmar duas vezes é ilegal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Review / BulkReview
// ──────────────────────────────────────────────────────────────────────────────

func TestReview_ExigeApproveReceipts(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)
	e.confirm(t, rec.ID)

	_, err := e.uc.Review(context.Background(), e.owner, rec.ID, entity.ReceiptProcessed)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := e.uc.Review(context.Background(), e.accountant, rec.ID, entity.ReceiptProcessed)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptProcessed, out.Status)
}

func TestReview_SemSaltoDePendingParaProcessed(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	_, err := e.uc.Review(context.Background(), e.accountant, rec.ID, entity.ReceiptProcessed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"processar sem confirmação intermediária é ilegal")
}

func TestReview_TerminalNaoMuda(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)
	e.confirm(t, rec.ID)

	_, err := e.uc.Review(context.Background(), e.accountant, rec.ID, entity.ReceiptRejected)
	require.NoError(t, err)

	_, err = e.uc.Review(context.Background(), e.accountant, rec.ID, entity.ReceiptProcessed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "rejected é terminal")
}

func TestReview_DesfechoInvalido(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)
	e.confirm(t, rec.ID)

	_, err := e.uc.Review(context.Background(), e.accountant, rec.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBulkReview_SucessoParcial(t *testing.T) {
	e := newEnv(t)

	confirmed := e.submit(t)
	e.confirm(t, confirmed.ID)
	pending := e.submit(t) // segue pending_confirmation: review deve falhar

	results := e.uc.BulkReview(context.Background(), e.accountant,
		[]string{confirmed.ID, pending.ID, "ghost"}, entity.ReceiptProcessed)

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)
	assert.False(t, results[2].OK)

	// a falha dos outros não desfez a que deu certo
	stored, err := e.recs.GetByID(confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptProcessed, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestEdit_ExigeEditReceipts(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	notes := "ajuste"
	_, err := e.uc.Edit(e.employee, rec.ID, dto.ReceiptPatch{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEdit_PatchParcialPreservaDemaisCampos(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	categoria := "Combustível"
	out, err := e.uc.Edit(e.accountant, rec.ID, dto.ReceiptPatch{Category: &categoria})
	require.NoError(t, err)

	assert.Equal(t, "Combustível", out.Category)
	assert.Equal(t, "Posto Shell", out.MerchantName, "campo não enviado permanece")
	assert.Equal(t, rec.CreatedAt.Unix(), out.CreatedAt.Unix(), "created_at nunca muda")
}

func TestEdit_TerminalNaoEditavel(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)
	e.confirm(t, rec.ID)
	_, err := e.uc.Review(context.Background(), e.accountant, rec.ID, entity.ReceiptProcessed)
	require.NoError(t, err)

	notes := "tarde demais"
	_, err = e.uc.Edit(e.accountant, rec.ID, dto.ReceiptPatch{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEdit_StatusSoPorTransicaoLegal(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	status := entity.ReceiptProcessed
	_, err := e.uc.Edit(e.accountant, rec.ID, dto.ReceiptPatch{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	status = entity.ReceiptConfirmed
	out, err := e.uc.Edit(e.accountant, rec.ID, dto.ReceiptPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptConfirmed, out.Status)
}

func TestRemove_ExigeDeleteReceipts(t *testing.T) {
	e := newEnv(t)
	rec := e.submit(t)

	err := e.uc.Remove(e.owner, rec.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// a negação não tocou na nota
	stored, err := e.recs.GetByID(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.NoError(t, e.uc.Remove(e.accountant, rec.ID))
	stored, err = e.recs.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestList_UploadOnlySemVisaoFinanceira(t *testing.T) {
	e := newEnv(t)
	e.submit(t)

	_, err := e.uc.List(e.employee, repository.ReceiptFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_BusinessEscopadoPorEmpresa(t *testing.T) {
	e := newEnv(t)
	e.submit(t)

	// nota de outra empresa
	other := &entity.Receipt{
		ID: "other", UserID: "zzz", UserCompanyName: "Outra Empresa",
		Status: entity.ReceiptPendingConfirmation, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, e.recs.Create(other))

	out, err := e.uc.List(e.owner, repository.ReceiptFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, e.owner.CompanyName, out[0].UserCompanyName)

	// o contador vê tudo
	out, err = e.uc.List(e.accountant, repository.ReceiptFilter{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestGet_RemetenteSempreEnxergaASua(t *testing.T) {
	e := newEnv(t)

	rec, err := e.uc.Submit(context.Background(), e.employee, dto.SubmitReceiptRequest{
		Extraction: sampleExtraction(),
	})
	require.NoError(t, err)

	out, err := e.uc.Get(e.employee, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checklist mensal
// ──────────────────────────────────────────────────────────────────────────────

func TestChecklistStats_RitmoDeEnvio(t *testing.T) {
	e := newEnv(t)
	now := time.Now()
	require.NoError(t, e.recs.Create(&entity.Receipt{
		ID: "r1", UserID: e.owner.ID, UserCompanyName: e.owner.CompanyName,
		Status: entity.ReceiptConfirmed, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, e.recs.Create(&entity.Receipt{
		ID: "r2", UserID: "outro", UserCompanyName: "Outra Empresa",
		Status: entity.ReceiptConfirmed, CreatedAt: now, UpdatedAt: now,
	}))

	out, err := e.uc.ChecklistStats(e.owner)
	require.NoError(t, err)
	assert.Equal(t, 30, out.TotalDocsExpected)
	assert.Equal(t, 1, out.TotalDocsSent, "business conta só a própria empresa")
	require.NotNil(t, out.LastUploadDate)
	assert.LessOrEqual(t, out.DaysSinceLastUpload, 1)
	assert.Equal(t, "on_track", out.Status)

	agg, err := e.uc.ChecklistStats(e.accountant)
	require.NoError(t, err)
	assert.Equal(t, 2, agg.TotalDocsSent, "contador vê o agregado")
}

func TestChecklistStats_FaixasDeAtraso(t *testing.T) {
	cases := []struct {
		name   string
		age    time.Duration
		status string
	}{
		{"parado ha 7 dias", 7 * 24 * time.Hour, "warning"},
		{"parado ha 20 dias", 20 * 24 * time.Hour, "behind"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			created := time.Now().Add(-tc.age)
			require.NoError(t, e.recs.Create(&entity.Receipt{
				ID: "r1", UserID: e.owner.ID, UserCompanyName: e.owner.CompanyName,
				Status: entity.ReceiptConfirmed, CreatedAt: created, UpdatedAt: created,
			}))

			out, err := e.uc.ChecklistStats(e.owner)
			require.NoError(t, err)
			assert.Equal(t, tc.status, out.Status)
		})
	}
}

func TestChecklistStats_SemNotas(t *testing.T) {
	e := newEnv(t)

	out, err := e.uc.ChecklistStats(e.owner)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalDocsSent)
	assert.Nil(t, out.LastUploadDate)
	assert.Equal(t, "on_track", out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificações
// ──────────────────────────────────────────────────────────────────────────────

func TestNotificacaoFalhaNaoDesfazTransicao(t *testing.T) {
	e := newEnv(t)
	uc := receipts.New(e.recs, e.users, e.cats, nil, nil, failingNotifier{}, zerolog.Nop())

	rec, err := uc.Submit(context.Background(), e.owner, dto.SubmitReceiptRequest{
		Extraction: sampleExtraction(),
	})
	require.NoError(t, err)

	out, err := uc.Confirm(context.Background(), e.owner, rec.ID, dto.ConfirmReceiptRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptConfirmed, out.Status)

	stored, err := e.recs.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceiptConfirmed, stored.Status,
		"a falha do canal não reverte o que foi gravado")
}
