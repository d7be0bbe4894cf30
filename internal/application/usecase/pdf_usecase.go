package usecase

import (
	"context"

	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// RFPPDFUseCase genera la representación imprimible de una RFP.
type RFPPDFUseCase struct {
	rfpRepo    repository.RFPRepository
	vendorRepo repository.VendorRepository
	generator  ports.RFPPDFGenerator
}

// NewRFPPDFUseCase construye el caso de uso.
func NewRFPPDFUseCase(
	rfpRepo repository.RFPRepository,
	vendorRepo repository.VendorRepository,
	generator ports.RFPPDFGenerator,
) *RFPPDFUseCase {
	return &RFPPDFUseCase{rfpRepo: rfpRepo, vendorRepo: vendorRepo, generator: generator}
}

// Generate devuelve los bytes del PDF de la RFP con sus proveedores resueltos.
func (uc *RFPPDFUseCase) Generate(ctx context.Context, rfpID string) ([]byte, error) {
	rfp, err := uc.rfpRepo.GetByID(rfpID)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, domain.ErrRFPNotFound
	}
	vendors, err := uc.vendorRepo.ListByIDs(rfp.VendorIDs)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateRFPPDF(ctx, rfp, vendors)
}
