package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/usecase"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedVendor(repo *fakeVendorRepo, id, name, email string) *entity.Vendor {
	v := &entity.Vendor{ID: id, Name: name, Email: email, CreatedAt: time.Now()}
	repo.vendors = append(repo.vendors, v)
	return v
}

func seedDraftRFP(repo *fakeRFPRepo, id, title string) *entity.RFP {
	rfp := &entity.RFP{
		ID:                     id,
		Title:                  title,
		NaturalLanguageRequest: "necesito " + title,
		Status:                 entity.StatusDraft,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}
	repo.rfps = append(repo.rfps, rfp)
	return rfp
}

func buildRFPUseCase(
	rfpRepo *fakeRFPRepo,
	vendorRepo *fakeVendorRepo,
	extraction *fakeExtraction,
	mailer *fakeMailer,
) *usecase.RFPUseCase {
	return usecase.NewRFPUseCase(
		rfpRepo, vendorRepo, extraction, mailer,
		&fakeTxRunner{rfpRepo: rfpRepo},
		"procurement@procura.co",
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateFromText
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFromText_PersisteDraftConTextoOriginal(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	extraction := &fakeExtraction{
		rfpOut: &dto.RFPExtractionDTO{
			Title:        "Compra de laptops",
			Budget:       decimal.NewFromInt(50000),
			DeliveryDate: &date,
			PaymentTerms: "30 días",
			Warranty:     "2 años",
			Items:        []dto.RFPItemDTO{{Name: "Laptop", Quantity: 20, Specs: "16GB RAM"}},
		},
	}
	uc := buildRFPUseCase(rfpRepo, &fakeVendorRepo{}, extraction, &fakeMailer{})

	original := "Necesito 20 laptops con 16GB de RAM, presupuesto 50 mil, para el 15 de marzo"
	out, err := uc.CreateFromText(context.Background(), dto.CreateRFPFromTextRequest{NaturalLanguageRequest: original})
	require.NoError(t, err)

	// Texto original intacto, nunca la paráfrasis del modelo
	assert.Equal(t, original, out.NaturalLanguageRequest)
	assert.Equal(t, original, extraction.lastRFPRequest)
	assert.Equal(t, "Compra de laptops", out.Title)
	assert.Equal(t, string(entity.StatusDraft), out.Status)
	assert.Empty(t, out.Vendors, "una RFP recién creada no tiene proveedores")
	assert.NotEmpty(t, out.ID)

	require.Len(t, rfpRepo.rfps, 1)
	assert.Equal(t, entity.StatusDraft, rfpRepo.rfps[0].Status)
	require.Len(t, rfpRepo.rfps[0].Items, 1)
	assert.Equal(t, float64(20), rfpRepo.rfps[0].Items[0].Quantity)
}

func TestCreateFromText_TextoVacio(t *testing.T) {
	extraction := &fakeExtraction{}
	uc := buildRFPUseCase(&fakeRFPRepo{}, &fakeVendorRepo{}, extraction, &fakeMailer{})

	_, err := uc.CreateFromText(context.Background(), dto.CreateRFPFromTextRequest{NaturalLanguageRequest: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, extraction.calls, "con entrada vacía el modelo no se invoca")
}

func TestCreateFromText_ExtraccionFalla_NoPersiste(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	extraction := &fakeExtraction{err: domain.ErrExtractionFormat}
	uc := buildRFPUseCase(rfpRepo, &fakeVendorRepo{}, extraction, &fakeMailer{})

	_, err := uc.CreateFromText(context.Background(), dto.CreateRFPFromTextRequest{NaturalLanguageRequest: "algo"})
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
	assert.Empty(t, rfpRepo.rfps, "si la extracción falla no se crea nada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Send
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_DespachaYTransicionaASent(t *testing.T) {
	var events []string
	rfpRepo := &fakeRFPRepo{events: &events}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	seedVendor(vendorRepo, "v2", "Norte S.A.S.", "contacto@norte.co")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	mailer := &fakeMailer{events: &events}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, mailer)

	out, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: []string{"v1", "v2"}})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusSent), out.Status)
	assert.Equal(t, entity.StatusSent, rfp.Status)
	assert.Equal(t, []string{"v1", "v2"}, rfp.VendorIDs)

	// Un solo lote con un correo por proveedor
	require.Len(t, mailer.batches, 1)
	require.Len(t, mailer.batches[0], 2)
	assert.Equal(t, "ventas@acme.com", mailer.batches[0][0].To)
	assert.Equal(t, "RFP: laptops", mailer.batches[0][0].Subject)
	// Reply-To con el id de la RFP por plus-addressing
	assert.Equal(t, "procurement+r1@procura.co", mailer.batches[0][0].ReplyTo)

	// Orden de efectos: primero el despacho, después la escritura del estado
	assert.Equal(t, []string{"sendBatch", "markSent"}, events)
}

func TestSend_VendorIdsVacio(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	seedDraftRFP(rfpRepo, "r1", "laptops")
	uc := buildRFPUseCase(rfpRepo, &fakeVendorRepo{}, &fakeExtraction{}, &fakeMailer{})

	_, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: nil})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSend_RFPInexistente(t *testing.T) {
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	uc := buildRFPUseCase(&fakeRFPRepo{}, vendorRepo, &fakeExtraction{}, &fakeMailer{})

	_, err := uc.Send(context.Background(), "nope", dto.SendRFPRequest{VendorIDs: []string{"v1"}})
	assert.ErrorIs(t, err, domain.ErrRFPNotFound)
}

func TestSend_YaEnviada_Conflicto(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	rfp.Status = entity.StatusSent
	mailer := &fakeMailer{}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, mailer)

	_, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: []string{"v1"}})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, mailer.batches, "una RFP ya enviada no vuelve a despachar correo")
}

func TestSend_VendorDesconocido_RechazaTodoElLote(t *testing.T) {
	// Política: nunca se recorta el fan-out en silencio. Un id desconocido
	// invalida la operación completa y no se envía nada.
	rfpRepo := &fakeRFPRepo{}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	mailer := &fakeMailer{}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, mailer)

	_, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: []string{"v1", "fantasma"}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, mailer.batches)
	assert.Equal(t, entity.StatusDraft, rfp.Status)
}

func TestSend_DespachoFalla_SigueDraft(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	mailer := &fakeMailer{err: domain.ErrUpstream}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, mailer)

	_, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: []string{"v1"}})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, entity.StatusDraft, rfp.Status, "si el despacho falla la RFP queda en Draft")
	assert.Empty(t, rfp.VendorIDs)
}

func TestSend_DeduplicaVendorIds(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	mailer := &fakeMailer{}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, mailer)

	_, err := uc.Send(context.Background(), "r1", dto.SendRFPRequest{VendorIDs: []string{"v1", "v1", ""}})
	require.NoError(t, err)
	require.Len(t, mailer.batches, 1)
	assert.Len(t, mailer.batches[0], 1, "duplicados y vacíos no generan correos extra")
	assert.Equal(t, []string{"v1"}, rfp.VendorIDs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_ResuelveProveedores(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	vendorRepo := &fakeVendorRepo{}
	seedVendor(vendorRepo, "v1", "Acme Corp", "ventas@acme.com")
	rfp := seedDraftRFP(rfpRepo, "r1", "laptops")
	rfp.Status = entity.StatusSent
	rfp.VendorIDs = []string{"v1"}
	uc := buildRFPUseCase(rfpRepo, vendorRepo, &fakeExtraction{}, &fakeMailer{})

	out, err := uc.GetByID("r1")
	require.NoError(t, err)
	require.Len(t, out.Vendors, 1)
	assert.Equal(t, "Acme Corp", out.Vendors[0].Name)
}

func TestGetByID_Inexistente(t *testing.T) {
	uc := buildRFPUseCase(&fakeRFPRepo{}, &fakeVendorRepo{}, &fakeExtraction{}, &fakeMailer{})

	_, err := uc.GetByID("nope")
	assert.ErrorIs(t, err, domain.ErrRFPNotFound)
}

func TestList_VariasRFPs(t *testing.T) {
	rfpRepo := &fakeRFPRepo{}
	seedDraftRFP(rfpRepo, "r1", "laptops")
	seedDraftRFP(rfpRepo, "r2", "sillas")
	uc := buildRFPUseCase(rfpRepo, &fakeVendorRepo{}, &fakeExtraction{}, &fakeMailer{})

	out, err := uc.List()
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
