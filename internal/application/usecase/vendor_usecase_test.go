package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/usecase"
	"github.com/jhoicas/procura-api/internal/domain"
)

func TestVendorAdd_OK(t *testing.T) {
	repo := &fakeVendorRepo{}
	uc := usecase.NewVendorUseCase(repo)

	out, err := uc.Add(dto.AddVendorRequest{Name: "Acme Corp", Email: "ventas@acme.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Acme Corp", out.Name)
	assert.False(t, out.CreatedAt.IsZero())
	require.Len(t, repo.vendors, 1)
}

func TestVendorAdd_CamposFaltantes(t *testing.T) {
	uc := usecase.NewVendorUseCase(&fakeVendorRepo{})

	_, err := uc.Add(dto.AddVendorRequest{Name: "", Email: "ventas@acme.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Add(dto.AddVendorRequest{Name: "Acme", Email: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVendorAdd_EmailInvalido(t *testing.T) {
	uc := usecase.NewVendorUseCase(&fakeVendorRepo{})

	_, err := uc.Add(dto.AddVendorRequest{Name: "Acme", Email: "no-es-un-email"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVendorAdd_EmailDuplicado(t *testing.T) {
	repo := &fakeVendorRepo{}
	uc := usecase.NewVendorUseCase(repo)

	_, err := uc.Add(dto.AddVendorRequest{Name: "Acme", Email: "ventas@acme.com"})
	require.NoError(t, err)
	_, err = uc.Add(dto.AddVendorRequest{Name: "Otro", Email: "ventas@acme.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, repo.vendors, 1)
}

func TestVendorList(t *testing.T) {
	repo := &fakeVendorRepo{}
	seedVendor(repo, "v1", "Acme Corp", "ventas@acme.com")
	seedVendor(repo, "v2", "Norte S.A.S.", "contacto@norte.co")
	uc := usecase.NewVendorUseCase(repo)

	out, err := uc.List()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Acme Corp", out[0].Name)
}
