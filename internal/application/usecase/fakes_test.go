package usecase_test

// Dobles de prueba en memoria para los casos de uso. Implementan los puertos
// del dominio y de la aplicación; los que importan para el orden de efectos
// (mailer, tx) anotan sus llamadas en un log de eventos compartido.

import (
	"context"
	"fmt"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// ── Repositorio de proveedores ────────────────────────────────────────────────

type fakeVendorRepo struct {
	vendors []*entity.Vendor
}

func (r *fakeVendorRepo) Create(v *entity.Vendor) error {
	for _, existing := range r.vendors {
		if existing.Email == v.Email {
			return domain.ErrDuplicate
		}
	}
	r.vendors = append(r.vendors, v)
	return nil
}

func (r *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) GetByEmail(email string) (*entity.Vendor, error) {
	for _, v := range r.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) ListByIDs(ids []string) ([]*entity.Vendor, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var out []*entity.Vendor
	for _, v := range r.vendors {
		if _, ok := set[v.ID]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVendorRepo) List() ([]*entity.Vendor, error) {
	return r.vendors, nil
}

// ── Repositorio de RFPs ───────────────────────────────────────────────────────

type fakeRFPRepo struct {
	rfps   []*entity.RFP
	events *[]string // opcional: anota "markSent" para asertar orden de efectos
}

func (r *fakeRFPRepo) Create(rfp *entity.RFP) error {
	r.rfps = append(r.rfps, rfp)
	return nil
}

func (r *fakeRFPRepo) GetByID(id string) (*entity.RFP, error) {
	for _, rfp := range r.rfps {
		if rfp.ID == id {
			return rfp, nil
		}
	}
	return nil, nil
}

func (r *fakeRFPRepo) List() ([]*entity.RFP, error) {
	return r.rfps, nil
}

func (r *fakeRFPRepo) MarkSent(id string, vendorIDs []string) error {
	if r.events != nil {
		*r.events = append(*r.events, "markSent")
	}
	for _, rfp := range r.rfps {
		if rfp.ID == id {
			// Mismo CAS que el repositorio real: solo escribe desde Draft.
			if rfp.Status != entity.StatusDraft {
				return fmt.Errorf("%w: la RFP %s ya no está en Draft", domain.ErrConflict, id)
			}
			rfp.Status = entity.StatusSent
			rfp.VendorIDs = vendorIDs
			return nil
		}
	}
	return domain.ErrRFPNotFound
}

// ── Repositorio de propuestas ─────────────────────────────────────────────────

type fakeProposalRepo struct {
	proposals []*entity.Proposal
}

func (r *fakeProposalRepo) Create(p *entity.Proposal) error {
	r.proposals = append(r.proposals, p)
	return nil
}

func (r *fakeProposalRepo) ListByRFP(rfpID string) ([]*entity.Proposal, error) {
	var out []*entity.Proposal
	for _, p := range r.proposals {
		if p.RFPID == rfpID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Servicio de extracción ────────────────────────────────────────────────────

// fakeExtraction devuelve respuestas fijas y cuenta las llamadas; captura los
// textos recibidos para asertar qué se le pidió al modelo.
type fakeExtraction struct {
	rfpOut      *dto.RFPExtractionDTO
	proposalOut *dto.ProposalExtractionDTO
	recOut      *dto.RecommendationDTO
	err         error

	calls          int
	lastRFPRequest string
	lastEmailBody  string
	lastProposals  string
}

func (s *fakeExtraction) ExtractRFP(_ context.Context, req string) (*dto.RFPExtractionDTO, error) {
	s.calls++
	s.lastRFPRequest = req
	return s.rfpOut, s.err
}

func (s *fakeExtraction) ExtractProposal(_ context.Context, body string) (*dto.ProposalExtractionDTO, error) {
	s.calls++
	s.lastEmailBody = body
	return s.proposalOut, s.err
}

func (s *fakeExtraction) RecommendVendor(_ context.Context, rfpReq, proposals string) (*dto.RecommendationDTO, error) {
	s.calls++
	s.lastRFPRequest = rfpReq
	s.lastProposals = proposals
	return s.recOut, s.err
}

// ── Mailer ────────────────────────────────────────────────────────────────────

type fakeMailer struct {
	batches [][]ports.OutboundEmail
	err     error
	events  *[]string
}

func (m *fakeMailer) SendBatch(_ context.Context, messages []ports.OutboundEmail) error {
	if m.events != nil {
		*m.events = append(*m.events, "sendBatch")
	}
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, messages)
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner pasa el repositorio tal cual al callback; suficiente para
// verificar que el envío escribe a través de la "transacción".
type fakeTxRunner struct {
	rfpRepo repository.RFPRepository
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.RFPRepository) error) error {
	return fn(tx.rfpRepo)
}
