package usecase

import (
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// ProposalUseCase lecturas de propuestas (las escrituras son exclusivas del
// pipeline de ingesta).
type ProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	vendorRepo   repository.VendorRepository
}

// NewProposalUseCase construye el caso de uso.
func NewProposalUseCase(
	proposalRepo repository.ProposalRepository,
	vendorRepo repository.VendorRepository,
) *ProposalUseCase {
	return &ProposalUseCase{proposalRepo: proposalRepo, vendorRepo: vendorRepo}
}

// ListByRFP lista las propuestas de una RFP (orden de inserción) con el
// proveedor resuelto. RFP inexistente produce lista vacía, no error.
func (uc *ProposalUseCase) ListByRFP(rfpID string) ([]*dto.ProposalResponse, error) {
	proposals, err := uc.proposalRepo.ListByRFP(rfpID)
	if err != nil {
		return nil, err
	}

	var vendorIDs []string
	for _, p := range proposals {
		vendorIDs = append(vendorIDs, p.VendorID)
	}
	vendors, err := uc.vendorRepo.ListByIDs(dedupe(vendorIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*dto.VendorResponse, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = entityToVendorResponse(v)
	}

	out := make([]*dto.ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, &dto.ProposalResponse{
			ID:           p.ID,
			RFPID:        p.RFPID,
			Vendor:       byID[p.VendorID],
			Price:        p.Price,
			DeliveryDate: p.DeliveryDate,
			Warranty:     p.Warranty,
			RawResponse:  p.RawResponse,
			AISummary:    p.AISummary,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out, nil
}
