package repository

import "github.com/jhoicas/procura-api/internal/domain/entity"

// ProposalRepository define el puerto de persistencia para Proposal.
// No hay Update ni Delete: las propuestas son inmutables una vez ingeridas.
type ProposalRepository interface {
	Create(proposal *entity.Proposal) error
	// ListByRFP devuelve las propuestas en orden de inserción (created_at, id).
	// La recomendación enumera en este orden; no se aplica ningún sort por precio.
	ListByRFP(rfpID string) ([]*entity.Proposal, error)
}
