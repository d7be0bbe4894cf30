package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal respuesta estructurada de un proveedor a una RFP, ingerida de un correo.
// Se crea exclusivamente desde el pipeline de ingesta; nunca se actualiza ni borra.
// Pueden existir varias propuestas para el mismo par (rfp, vendor): no hay
// restricción de unicidad y todas cuentan para la recomendación.
type Proposal struct {
	ID           string
	RFPID        string
	VendorID     string
	Price        decimal.Decimal
	DeliveryDate *time.Time
	Warranty     string
	RawResponse  string // cuerpo del correo tal cual llegó (auditoría/debug)
	AISummary    string // reservado; ningún flujo lo escribe hoy
	CreatedAt    time.Time
}
