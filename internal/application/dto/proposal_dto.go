package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundEmailRequest payload del webhook de correo entrante (multipart/form).
type InboundEmailRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
	Text string `form:"text"`
}

// ProposalResponse propuesta con el proveedor resuelto.
type ProposalResponse struct {
	ID           string          `json:"id"`
	RFPID        string          `json:"rfp"`
	Vendor       *VendorResponse `json:"vendor,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty"`
	Warranty     string          `json:"warranty,omitempty"`
	RawResponse  string          `json:"rawResponse,omitempty"`
	AISummary    string          `json:"aiSummary,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ProposalExtractionDTO campos que el modelo extrae del cuerpo del correo.
type ProposalExtractionDTO struct {
	Price        decimal.Decimal
	DeliveryDate *time.Time
	Warranty     string
}
