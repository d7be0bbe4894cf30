package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/usecase"
	"github.com/jhoicas/procura-api/internal/domain"
)

// RFPHandler maneja el ciclo de vida de las RFPs: listado, detalle, creación
// desde texto libre, envío a proveedores, recomendación y PDF.
type RFPHandler struct {
	rfpUC *usecase.RFPUseCase
	recUC *usecase.RecommendationUseCase
	pdfUC *usecase.RFPPDFUseCase
}

// NewRFPHandler construye el handler.
func NewRFPHandler(rfpUC *usecase.RFPUseCase, recUC *usecase.RecommendationUseCase, pdfUC *usecase.RFPPDFUseCase) *RFPHandler {
	return &RFPHandler{rfpUC: rfpUC, recUC: recUC, pdfUC: pdfUC}
}

// List GET /rfps
func (h *RFPHandler) List(c *fiber.Ctx) error {
	list, err := h.rfpUC.List()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STORE", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /rfps/:id
func (h *RFPHandler) GetByID(c *fiber.Ctx) error {
	rfp, err := h.rfpUC.GetByID(c.Params("id"))
	if err != nil {
		// Por contrato de la API los errores de lectura (incluido no-encontrado)
		// responden 400.
		if errors.Is(err, domain.ErrRFPNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STORE", Message: err.Error()})
	}
	return c.JSON(rfp)
}

// CreateFromText godoc
// @Summary      Crear RFP desde texto libre
// @Description  Envía la solicitud en lenguaje natural al servicio de extracción
//               y persiste una RFP en Draft con el texto original intacto.
// @Tags         rfps
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRFPFromTextRequest  true  "naturalLanguageRequest (obligatorio)"
// @Success      200   {object}  dto.RFPResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /rfps/create-from-text [post]
func (h *RFPHandler) CreateFromText(c *fiber.Ctx) error {
	var in dto.CreateRFPFromTextRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rfp, err := h.rfpUC.CreateFromText(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		log.Error().Err(err).Msg("crear RFP desde texto")
		if errors.Is(err, domain.ErrExtractionFormat) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXTRACTION_FORMAT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rfp)
}

// Send POST /rfps/:id/send
func (h *RFPHandler) Send(c *fiber.Ctx) error {
	var in dto.SendRFPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	_, err := h.rfpUC.Send(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrRFPNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		log.Error().Err(err).Str("rfp_id", c.Params("id")).Msg("enviar RFP")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "RFP enviada correctamente"})
}

// Recommend POST /rfps/:id/recommendation
func (h *RFPHandler) Recommend(c *fiber.Ctx) error {
	rec, err := h.recUC.Recommend(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRFPNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrNoProposals):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_PROPOSALS", Message: err.Error()})
		}
		log.Error().Err(err).Str("rfp_id", c.Params("id")).Msg("generar recomendación")
		if errors.Is(err, domain.ErrExtractionFormat) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXTRACTION_FORMAT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rec)
}

// PDF GET /rfps/:id/pdf
func (h *RFPHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.pdfUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRFPNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		log.Error().Err(err).Str("rfp_id", c.Params("id")).Msg("generar PDF de RFP")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="rfp-`+c.Params("id")+`.pdf"`)
	return c.Send(doc)
}
