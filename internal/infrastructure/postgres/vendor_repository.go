package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un nuevo proveedor. Devuelve domain.ErrDuplicate si el email ya existe.
func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.Email, vendor.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `SELECT id, name, email, created_at FROM vendors WHERE id = $1`
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Name, &v.Email, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// GetByEmail obtiene un proveedor por dirección de correo (match exacto).
func (r *VendorRepo) GetByEmail(email string) (*entity.Vendor, error) {
	query := `SELECT id, name, email, created_at FROM vendors WHERE email = $1`
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&v.ID, &v.Name, &v.Email, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor by email: %w", err)
	}
	return &v, nil
}

// ListByIDs obtiene los proveedores cuyos IDs estén en ids. IDs desconocidos
// simplemente no aparecen en el resultado; el caller decide la política.
func (r *VendorRepo) ListByIDs(ids []string) ([]*entity.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, email, created_at FROM vendors WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list vendors by ids: %w", err)
	}
	defer rows.Close()
	return scanVendors(rows)
}

// List lista todos los proveedores en orden de registro.
func (r *VendorRepo) List() ([]*entity.Vendor, error) {
	query := `SELECT id, name, email, created_at FROM vendors ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	return scanVendors(rows)
}

func scanVendors(rows pgx.Rows) ([]*entity.Vendor, error) {
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
