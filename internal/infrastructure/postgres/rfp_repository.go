package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.RFPRepository = (*RFPRepo)(nil)

// RFPRepo implementación de RFPRepository (usable con pool o tx).
// Los items viven como JSONB en la misma fila; los proveedores del envío
// en la tabla de enlace rfp_vendors.
type RFPRepo struct {
	q Querier
}

// NewRFPRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRFPRepository(q Querier) *RFPRepo {
	return &RFPRepo{q: q}
}

// Create persiste una nueva RFP (estado Draft, sin proveedores).
func (r *RFPRepo) Create(rfp *entity.RFP) error {
	items, err := json.Marshal(rfp.Items)
	if err != nil {
		return fmt.Errorf("serializar items: %w", err)
	}
	query := `
		INSERT INTO rfps (id, title, natural_language_request, budget, delivery_date,
		                  payment_terms, warranty, items, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		rfp.ID, rfp.Title, rfp.NaturalLanguageRequest, rfp.Budget, rfp.DeliveryDate,
		rfp.PaymentTerms, rfp.Warranty, items, string(rfp.Status), rfp.CreatedAt, rfp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rfp: %w", err)
	}
	return nil
}

// GetByID obtiene una RFP por ID con sus VendorIDs cargados, o nil si no existe.
func (r *RFPRepo) GetByID(id string) (*entity.RFP, error) {
	query := `
		SELECT id, title, natural_language_request, budget, delivery_date,
		       payment_terms, warranty, items, status, created_at, updated_at
		FROM rfps WHERE id = $1`
	rfp, err := r.scanRFP(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rfp: %w", err)
	}

	vendorIDs, err := r.vendorIDsFor(id)
	if err != nil {
		return nil, err
	}
	rfp.VendorIDs = vendorIDs
	return rfp, nil
}

// List lista todas las RFPs (más recientes primero) con sus VendorIDs.
func (r *RFPRepo) List() ([]*entity.RFP, error) {
	query := `
		SELECT id, title, natural_language_request, budget, delivery_date,
		       payment_terms, warranty, items, status, created_at, updated_at
		FROM rfps ORDER BY created_at DESC, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list rfps: %w", err)
	}
	defer rows.Close()

	var list []*entity.RFP
	for rows.Next() {
		rfp, err := r.scanRFP(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rfp: %w", err)
		}
		list = append(list, rfp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Una sola consulta a la tabla de enlace para todas las RFPs
	links, err := r.q.Query(context.Background(),
		`SELECT rfp_id, vendor_id FROM rfp_vendors ORDER BY rfp_id, vendor_id`)
	if err != nil {
		return nil, fmt.Errorf("list rfp vendors: %w", err)
	}
	defer links.Close()

	byRFP := make(map[string][]string)
	for links.Next() {
		var rfpID, vendorID string
		if err := links.Scan(&rfpID, &vendorID); err != nil {
			return nil, fmt.Errorf("scan rfp vendor: %w", err)
		}
		byRFP[rfpID] = append(byRFP[rfpID], vendorID)
	}
	if err := links.Err(); err != nil {
		return nil, err
	}
	for _, rfp := range list {
		rfp.VendorIDs = byRFP[rfp.ID]
	}
	return list, nil
}

// MarkSent aplica la transición Draft → Sent como compare-and-swap y reemplaza
// el conjunto de proveedores. Llamar dentro de una transacción (TxRunner) para
// que el flip de status y los enlaces queden atómicos.
// Devuelve domain.ErrConflict si el status ya no era Draft.
func (r *RFPRepo) MarkSent(id string, vendorIDs []string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE rfps SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		id, string(entity.StatusSent), string(entity.StatusDraft),
	)
	if err != nil {
		return fmt.Errorf("update rfp status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM rfp_vendors WHERE rfp_id = $1`, id); err != nil {
		return fmt.Errorf("clear rfp vendors: %w", err)
	}
	for _, vendorID := range vendorIDs {
		if _, err := r.q.Exec(context.Background(),
			`INSERT INTO rfp_vendors (rfp_id, vendor_id) VALUES ($1, $2)`,
			id, vendorID); err != nil {
			return fmt.Errorf("insert rfp vendor: %w", err)
		}
	}
	return nil
}

func (r *RFPRepo) vendorIDsFor(rfpID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT vendor_id FROM rfp_vendors WHERE rfp_id = $1 ORDER BY vendor_id`, rfpID)
	if err != nil {
		return nil, fmt.Errorf("get rfp vendors: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan rfp vendor id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanRFP escanea una fila de rfps (sin VendorIDs, que viven en rfp_vendors).
func (r *RFPRepo) scanRFP(row pgx.Row) (*entity.RFP, error) {
	var rfp entity.RFP
	var items []byte
	var status string
	err := row.Scan(
		&rfp.ID, &rfp.Title, &rfp.NaturalLanguageRequest, &rfp.Budget, &rfp.DeliveryDate,
		&rfp.PaymentTerms, &rfp.Warranty, &items, &status, &rfp.CreatedAt, &rfp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &rfp.Items); err != nil {
			return nil, fmt.Errorf("deserializar items: %w", err)
		}
	}
	rfp.Status = entity.RFPStatus(status)
	return &rfp, nil
}
