package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/approval"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
)

// ApprovalHandler fluxo hierárquico de aprovação de contas pendentes.
type ApprovalHandler struct {
	uc *approval.UseCase
}

// NewApprovalHandler constrói o handler de aprovações.
func NewApprovalHandler(uc *approval.UseCase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

// Pending lista as contas pendentes visíveis ao ator.
// GET /api/approvals/pending
func (h *ApprovalHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.PendingFor(GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Decide aprova ou rejeita uma conta pendente.
// POST /api/approvals/:id/decide
func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Decision != approval.DecisionApprove && in.Decision != approval.DecisionReject {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision deve ser approve ou reject"})
	}
	out, err := h.uc.Decide(c.Context(), GetRole(c), c.Params("id"), in.Decision)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus alterna uma conta entre active e blocked.
// POST /api/approvals/:id/status
func (h *ApprovalHandler) SetStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"` // active | blocked
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.SetStatus(c.Context(), GetRole(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
