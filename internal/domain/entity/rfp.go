package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RFPStatus estado del ciclo de vida de una RFP.
// Solo avanza: Draft → Sent → Completed, nunca retrocede.
type RFPStatus string

const (
	StatusDraft     RFPStatus = "Draft"
	StatusSent      RFPStatus = "Sent"
	StatusCompleted RFPStatus = "Completed"
)

// RFPItem renglón solicitado en la RFP.
type RFPItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Specs    string  `json:"specs,omitempty"`
}

// RFP solicitud de propuesta derivada de un texto libre del comprador.
// NaturalLanguageRequest conserva el texto original tal cual (auditoría);
// nunca la paráfrasis del modelo.
type RFP struct {
	ID                     string
	Title                  string
	NaturalLanguageRequest string
	Budget                 decimal.Decimal // cero = no especificado
	DeliveryDate           *time.Time
	PaymentTerms           string
	Warranty               string
	Items                  []RFPItem
	Status                 RFPStatus
	VendorIDs              []string // poblado solo en/tras la transición a Sent
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// CanSend indica si la RFP admite la transición Draft → Sent.
// El repositorio además aplica un CAS sobre status al persistir.
func (r *RFP) CanSend() bool {
	return r.Status == StatusDraft
}
