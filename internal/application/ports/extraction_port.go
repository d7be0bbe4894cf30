package ports

import (
	"context"

	"github.com/jhoicas/procura-api/internal/application/dto"
)

// ExtractionService define el puerto de salida hacia el servicio de extracción
// estructurada (texto libre → JSON con esquema fijo). Cualquier adaptador
// (Gemini, Anthropic, mock) debe implementar esta interfaz; la aplicación solo
// conoce este contrato, no la implementación concreta.
//
// Contrato estricto: el adaptador parsea la salida del modelo como un único
// objeto JSON (tolerando solo fences de markdown, que elimina) y valida la
// presencia y tipo de los campos obligatorios tras el parseo. Cualquier
// desviación se reporta como domain.ErrExtractionFormat; los fallos de red o
// de la API como domain.ErrUpstream.
type ExtractionService interface {
	// ExtractRFP convierte la solicitud en lenguaje natural del comprador en
	// los campos estructurados de una RFP (título, presupuesto, fecha, términos,
	// garantía e items).
	ExtractRFP(ctx context.Context, naturalLanguageRequest string) (*dto.RFPExtractionDTO, error)

	// ExtractProposal convierte el cuerpo de un correo de proveedor en los
	// campos estructurados de una propuesta (precio, fecha de entrega, garantía).
	ExtractProposal(ctx context.Context, emailBody string) (*dto.ProposalExtractionDTO, error)

	// RecommendVendor analiza la solicitud original y el bloque de propuestas
	// y devuelve un resumen con el proveedor recomendado.
	RecommendVendor(ctx context.Context, rfpRequest, proposalsBlock string) (*dto.RecommendationDTO, error)
}
