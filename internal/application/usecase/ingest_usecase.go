package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/inbound"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// IngestProposalUseCase pipeline de ingesta del correo entrante:
// resolución de entidades por convención de direcciones (from → Vendor,
// to → RFP por plus-addressing), extracción estructurada del cuerpo y
// persistencia de la propuesta.
//
// Sin chequeo de idempotencia: reenviar el mismo correo crea una propuesta
// duplicada. Limitación aceptada del contrato, cubierta por tests.
type IngestProposalUseCase struct {
	vendorRepo   repository.VendorRepository
	rfpRepo      repository.RFPRepository
	proposalRepo repository.ProposalRepository
	extraction   ports.ExtractionService
}

// NewIngestProposalUseCase construye el pipeline con sus colaboradores.
func NewIngestProposalUseCase(
	vendorRepo repository.VendorRepository,
	rfpRepo repository.RFPRepository,
	proposalRepo repository.ProposalRepository,
	extraction ports.ExtractionService,
) *IngestProposalUseCase {
	return &IngestProposalUseCase{
		vendorRepo:   vendorRepo,
		rfpRepo:      rfpRepo,
		proposalRepo: proposalRepo,
		extraction:   extraction,
	}
}

// Ingest procesa un correo entrante y persiste la propuesta resultante.
// Valida primero lo barato (campos presentes), después resuelve entidades,
// y solo al final llama al modelo.
func (uc *IngestProposalUseCase) Ingest(ctx context.Context, in dto.InboundEmailRequest) (*dto.ProposalResponse, error) {
	if in.From == "" || in.To == "" || in.Text == "" {
		return nil, fmt.Errorf("%w: faltan campos from, to o text en el payload del correo", domain.ErrValidation)
	}

	// Resolución del proveedor por la dirección entre <...> del 'from'
	vendorEmail, err := inbound.VendorAddress(in.From)
	if err != nil {
		return nil, err
	}
	vendor, err := uc.vendorRepo.GetByEmail(vendorEmail)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVendorNotFound, vendorEmail)
	}

	// Resolución de la RFP por el sufijo plus del 'to'
	rfpID, err := inbound.RFPID(in.To)
	if err != nil {
		return nil, err
	}
	rfp, err := uc.rfpRepo.GetByID(rfpID)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRFPNotFound, rfpID)
	}

	extractCtx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()
	extracted, err := uc.extraction.ExtractProposal(extractCtx, in.Text)
	if err != nil {
		return nil, fmt.Errorf("extracción de propuesta: %w", err)
	}

	// RawResponse conserva el cuerpo tal cual llegó, independiente de lo que
	// el modelo haya extraído: es la evidencia de auditoría.
	proposal := &entity.Proposal{
		ID:           uuid.New().String(),
		RFPID:        rfp.ID,
		VendorID:     vendor.ID,
		Price:        extracted.Price,
		DeliveryDate: extracted.DeliveryDate,
		Warranty:     extracted.Warranty,
		RawResponse:  in.Text,
		CreatedAt:    time.Now(),
	}
	if err := uc.proposalRepo.Create(proposal); err != nil {
		return nil, err
	}

	return &dto.ProposalResponse{
		ID:           proposal.ID,
		RFPID:        proposal.RFPID,
		Vendor:       entityToVendorResponse(vendor),
		Price:        proposal.Price,
		DeliveryDate: proposal.DeliveryDate,
		Warranty:     proposal.Warranty,
		RawResponse:  proposal.RawResponse,
		CreatedAt:    proposal.CreatedAt,
	}, nil
}
