package usecase

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// VendorUseCase casos de uso para proveedores. Registro explícito únicamente:
// la ingesta nunca crea proveedores, y una vez creados son inmutables.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Add registra un nuevo proveedor. Devuelve domain.ErrValidation si faltan
// campos o el email no es una dirección válida, domain.ErrDuplicate si el
// email ya está registrado.
func (uc *VendorUseCase) Add(in dto.AddVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name y email son requeridos", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: email %q no es una dirección válida", domain.ErrValidation, in.Email)
	}
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return entityToVendorResponse(vendor), nil
}

// List lista todos los proveedores.
func (uc *VendorUseCase) List() ([]*dto.VendorResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, entityToVendorResponse(v))
	}
	return out, nil
}

func entityToVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
	}
}
