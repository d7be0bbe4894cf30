package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/usecase"
)

// ProposalHandler lecturas de propuestas.
type ProposalHandler struct {
	uc *usecase.ProposalUseCase
}

// NewProposalHandler construye el handler.
func NewProposalHandler(uc *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// ListByRFP GET /proposals/rfp/:rfpId
func (h *ProposalHandler) ListByRFP(c *fiber.Ctx) error {
	list, err := h.uc.ListByRFP(c.Params("rfpId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STORE", Message: err.Error()})
	}
	return c.JSON(list)
}
