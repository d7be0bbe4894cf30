package usecase

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con un repositorio de RFPs atado a una
// transacción. El envío lo usa para que el CAS de status y el reemplazo de
// proveedores queden atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(rfpRepo repository.RFPRepository) error) error
}
