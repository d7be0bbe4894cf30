package repository

import "github.com/jhoicas/procura-api/internal/domain/entity"

// RFPRepository define el puerto de persistencia para RFP.
type RFPRepository interface {
	Create(rfp *entity.RFP) error
	// GetByID devuelve la RFP con VendorIDs cargados, o nil si no existe.
	GetByID(id string) (*entity.RFP, error)
	List() ([]*entity.RFP, error)
	// MarkSent aplica la transición Draft → Sent como compare-and-swap:
	// solo escribe si el status leído sigue siendo Draft, y reemplaza el
	// conjunto de proveedores. Devuelve domain.ErrConflict si pierde la carrera.
	MarkSent(id string, vendorIDs []string) error
}
