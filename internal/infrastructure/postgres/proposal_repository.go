package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implementación de ProposalRepository (usable con pool o tx).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create persiste una nueva propuesta. Sin constraint de unicidad sobre
// (rfp_id, vendor_id): el mismo proveedor puede responder varias veces.
func (r *ProposalRepo) Create(proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, rfp_id, vendor_id, price, delivery_date,
		                       warranty, raw_response, ai_summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		proposal.ID, proposal.RFPID, proposal.VendorID, proposal.Price, proposal.DeliveryDate,
		proposal.Warranty, proposal.RawResponse, proposal.AISummary, proposal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	return nil
}

// ListByRFP lista las propuestas de una RFP en orden de inserción.
func (r *ProposalRepo) ListByRFP(rfpID string) ([]*entity.Proposal, error) {
	query := `
		SELECT id, rfp_id, vendor_id, price, delivery_date, warranty,
		       raw_response, ai_summary, created_at
		FROM proposals WHERE rfp_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, rfpID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(
			&p.ID, &p.RFPID, &p.VendorID, &p.Price, &p.DeliveryDate, &p.Warranty,
			&p.RawResponse, &p.AISummary, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
