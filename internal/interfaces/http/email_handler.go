package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/usecase"
	"github.com/jhoicas/procura-api/internal/domain"
)

// EmailHandler webhook del correo entrante (proveedor → propuesta).
type EmailHandler struct {
	uc *usecase.IngestProposalUseCase
}

// NewEmailHandler construye el handler.
func NewEmailHandler(uc *usecase.IngestProposalUseCase) *EmailHandler {
	return &EmailHandler{uc: uc}
}

// Receive godoc
// @Summary      Recibir correo entrante de un proveedor
// @Description  El webhook de correo entrega multipart/form con from, to y text.
//               El 'from' resuelve al proveedor por la dirección entre <...>;
//               el 'to' resuelve la RFP por plus-addressing (local+id@dominio).
// @Tags         email
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/email/receive [post]
func (h *EmailHandler) Receive(c *fiber.Ctx) error {
	in := dto.InboundEmailRequest{
		From: c.FormValue("from"),
		To:   c.FormValue("to"),
		Text: c.FormValue("text"),
	}

	_, err := h.uc.Ingest(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedFromHeader), errors.Is(err, domain.ErrMalformedToHeader):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_HEADER", Message: err.Error()})
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrVendorNotFound), errors.Is(err, domain.ErrRFPNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		log.Error().Err(err).Msg("procesar correo entrante")
		if errors.Is(err, domain.ErrExtractionFormat) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXTRACTION_FORMAT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.MessageResponse{Message: "Propuesta recibida y procesada"})
}
