package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRFPFromTextRequest entrada del flujo de creación por lenguaje natural.
type CreateRFPFromTextRequest struct {
	NaturalLanguageRequest string `json:"naturalLanguageRequest"`
}

// SendRFPRequest conjunto de proveedores destino del envío.
type SendRFPRequest struct {
	VendorIDs []string `json:"vendorIds"`
}

// RFPItemDTO renglón de la RFP.
type RFPItemDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Specs    string  `json:"specs,omitempty"`
}

// RFPResponse RFP con proveedores resueltos.
type RFPResponse struct {
	ID                     string           `json:"id"`
	Title                  string           `json:"title"`
	NaturalLanguageRequest string           `json:"naturalLanguageRequest"`
	Budget                 decimal.Decimal  `json:"budget"`
	DeliveryDate           *time.Time       `json:"deliveryDate,omitempty"`
	PaymentTerms           string           `json:"paymentTerms,omitempty"`
	Warranty               string           `json:"warranty,omitempty"`
	Items                  []RFPItemDTO     `json:"items"`
	Status                 string           `json:"status"`
	Vendors                []VendorResponse `json:"vendors"`
	CreatedAt              time.Time        `json:"createdAt"`
	UpdatedAt              time.Time        `json:"updatedAt"`
}

// ── Payloads del servicio de extracción (ya parseados y validados) ────────────

// RFPExtractionDTO campos estructurados que el modelo extrae de la solicitud.
type RFPExtractionDTO struct {
	Title        string
	Budget       decimal.Decimal
	DeliveryDate *time.Time
	PaymentTerms string
	Warranty     string
	Items        []RFPItemDTO
}

// RecommendationDTO salida del análisis de propuestas.
// Se devuelve al caller tal cual; no se persiste.
type RecommendationDTO struct {
	Summary           string `json:"summary"`
	RecommendedVendor string `json:"recommendedVendor"`
}
