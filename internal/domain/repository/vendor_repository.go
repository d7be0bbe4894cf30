package repository

import "github.com/jhoicas/procura-api/internal/domain/entity"

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	GetByEmail(email string) (*entity.Vendor, error)
	ListByIDs(ids []string) ([]*entity.Vendor, error)
	List() ([]*entity.Vendor, error)
}
