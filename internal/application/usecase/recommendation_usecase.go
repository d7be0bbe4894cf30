package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// RecommendationUseCase agrega todas las propuestas de una RFP y pide al
// modelo un resumen con proveedor recomendado. El resultado se devuelve al
// caller tal cual y no se persiste (el campo aiSummary de Proposal queda
// intencionalmente sin escribir; ver DESIGN.md).
type RecommendationUseCase struct {
	rfpRepo      repository.RFPRepository
	proposalRepo repository.ProposalRepository
	vendorRepo   repository.VendorRepository
	extraction   ports.ExtractionService
}

// NewRecommendationUseCase construye el caso de uso.
func NewRecommendationUseCase(
	rfpRepo repository.RFPRepository,
	proposalRepo repository.ProposalRepository,
	vendorRepo repository.VendorRepository,
	extraction ports.ExtractionService,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		rfpRepo:      rfpRepo,
		proposalRepo: proposalRepo,
		vendorRepo:   vendorRepo,
		extraction:   extraction,
	}
}

// Recommend analiza las propuestas recibidas para la RFP.
// Sin propuestas no hay recomendación definida: ErrNoProposals, y el modelo
// no se invoca. Las propuestas se enumeran en el orden natural del store
// (orden de inserción); no se ordena por precio ni ningún otro criterio.
func (uc *RecommendationUseCase) Recommend(ctx context.Context, rfpID string) (*dto.RecommendationDTO, error) {
	rfp, err := uc.rfpRepo.GetByID(rfpID)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, domain.ErrRFPNotFound
	}

	proposals, err := uc.proposalRepo.ListByRFP(rfpID)
	if err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, domain.ErrNoProposals
	}

	block, err := uc.proposalsBlock(proposals)
	if err != nil {
		return nil, err
	}

	extractCtx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()
	rec, err := uc.extraction.RecommendVendor(extractCtx, rfp.NaturalLanguageRequest, block)
	if err != nil {
		return nil, fmt.Errorf("recomendación: %w", err)
	}
	return rec, nil
}

// proposalsBlock arma el bloque de texto que enumera cada propuesta con
// nombre del proveedor, precio, fecha de entrega y garantía.
func (uc *RecommendationUseCase) proposalsBlock(proposals []*entity.Proposal) (string, error) {
	var vendorIDs []string
	for _, p := range proposals {
		vendorIDs = append(vendorIDs, p.VendorID)
	}
	vendors, err := uc.vendorRepo.ListByIDs(dedupe(vendorIDs))
	if err != nil {
		return "", err
	}
	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.Name
	}

	var sb strings.Builder
	for i, p := range proposals {
		delivery := "—"
		if p.DeliveryDate != nil {
			delivery = p.DeliveryDate.Format("02/01/2006")
		}
		fmt.Fprintf(&sb, "Propuesta %d:\n", i+1)
		fmt.Fprintf(&sb, "- Proveedor: %s\n", names[p.VendorID])
		fmt.Fprintf(&sb, "- Precio: $%s\n", p.Price.StringFixed(2))
		fmt.Fprintf(&sb, "- Fecha de entrega: %s\n", delivery)
		fmt.Fprintf(&sb, "- Garantía: %s\n\n", p.Warranty)
	}
	return sb.String(), nil
}
