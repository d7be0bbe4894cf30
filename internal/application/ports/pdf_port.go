package ports

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// RFPPDFGenerator puerto de salida para la representación imprimible de una RFP.
type RFPPDFGenerator interface {
	GenerateRFPPDF(ctx context.Context, rfp *entity.RFP, vendors []*entity.Vendor) ([]byte, error)
}
