package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/application/usecase"
)

func TestProposalListByRFP_ResuelveProveedores(t *testing.T) {
	vendorRepo := &fakeVendorRepo{}
	proposalRepo := &fakeProposalRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	seedProposal(proposalRepo, "r1", "v1", 45000, "1 año")
	seedProposal(proposalRepo, "r2", "v1", 999, "otro rfp")
	uc := usecase.NewProposalUseCase(proposalRepo, vendorRepo)

	out, err := uc.ListByRFP("r1")
	require.NoError(t, err)
	require.Len(t, out, 1, "solo las propuestas de la RFP pedida")
	require.NotNil(t, out[0].Vendor)
	assert.Equal(t, "Acme Corp", out[0].Vendor.Name)
	assert.Equal(t, "1 año", out[0].Warranty)
}

func TestProposalListByRFP_RFPInexistente_ListaVacia(t *testing.T) {
	uc := usecase.NewProposalUseCase(&fakeProposalRepo{}, &fakeVendorRepo{})

	out, err := uc.ListByRFP("nope")
	require.NoError(t, err, "una RFP sin propuestas no es un error")
	assert.Empty(t, out)
}
