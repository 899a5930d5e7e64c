package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// ReceiptHandler ciclo de vida das notas de despesa.
type ReceiptHandler struct {
	uc    *receipts.UseCase
	users repository.UserRepository
}

// NewReceiptHandler constrói o handler de notas.
func NewReceiptHandler(uc *receipts.UseCase, users repository.UserRepository) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, users: users}
}

// Submit envia um documento: upload do blob, extração e criação em
// pending_confirmation.
// POST /api/receipts
func (h *ReceiptHandler) Submit(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var in dto.SubmitReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ImageBase64 == "" && in.Extraction == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "documento ou extração são obrigatórios"})
	}
	out, err := h.uc.Submit(c.Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista as notas visíveis ao ator.
// GET /api/receipts?status=&category=
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	filter := repository.ReceiptFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	out, err := h.uc.List(actor, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Checklist devolve o ritmo mensal de envio de documentos visível ao ator.
// GET /api/receipts/checklist
func (h *ReceiptHandler) Checklist(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	out, err := h.uc.ChecklistStats(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtém uma nota por id.
// GET /api/receipts/:id
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	out, err := h.uc.Get(actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm reconcilia e confirma a nota. A resposta carrega o sinal de
// divergência de parcelas; ele é consultivo e não bloqueia.
// POST /api/receipts/:id/confirm
func (h *ReceiptHandler) Confirm(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var in dto.ConfirmReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Confirm(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Review aplica o desfecho contábil (processed | rejected).
// POST /api/receipts/:id/review
func (h *ReceiptHandler) Review(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Review(c.Context(), actor, c.Params("id"), in.Outcome)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkReview aplica o desfecho a vários ids; sucesso parcial é reportado
// por id, nunca tudo-ou-nada.
// POST /api/receipts/review
func (h *ReceiptHandler) BulkReview(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var in dto.BulkReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids é obrigatório"})
	}
	return c.JSON(h.uc.BulkReview(c.Context(), actor, in.IDs, in.Outcome))
}

// Update aplica um patch de edição.
// PATCH /api/receipts/:id
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var patch dto.ReceiptPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Edit(actor, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete exclui a nota (exige delete_receipts).
// DELETE /api/receipts/:id
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	if err := h.uc.Remove(actor, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
