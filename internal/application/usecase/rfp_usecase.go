package usecase

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// extractionTimeout tope por llamada al servicio de extracción. Un solo
// intento: si el modelo no responde a tiempo, la operación falla.
const extractionTimeout = 15 * time.Second

// RFPUseCase orquesta el ciclo de vida de la RFP: creación desde texto libre
// (Draft) y envío a proveedores (Sent). Nada transiciona hoy a Completed.
type RFPUseCase struct {
	rfpRepo    repository.RFPRepository
	vendorRepo repository.VendorRepository
	extraction ports.ExtractionService
	mailer     ports.MailSender
	tx         TxRunner
	// inboundAddress dirección de ingesta; el envío codifica el id de la RFP
	// en su local-part para el Reply-To (vacía = sin Reply-To).
	inboundAddress string
}

// NewRFPUseCase construye el caso de uso con sus colaboradores.
func NewRFPUseCase(
	rfpRepo repository.RFPRepository,
	vendorRepo repository.VendorRepository,
	extraction ports.ExtractionService,
	mailer ports.MailSender,
	tx TxRunner,
	inboundAddress string,
) *RFPUseCase {
	return &RFPUseCase{
		rfpRepo:        rfpRepo,
		vendorRepo:     vendorRepo,
		extraction:     extraction,
		mailer:         mailer,
		tx:             tx,
		inboundAddress: inboundAddress,
	}
}

// CreateFromText extrae los campos estructurados del texto libre y persiste
// una RFP nueva en Draft, sin proveedores. NaturalLanguageRequest conserva el
// texto original del caller, nunca la paráfrasis del modelo. Si la extracción
// falla no se crea nada.
func (uc *RFPUseCase) CreateFromText(ctx context.Context, in dto.CreateRFPFromTextRequest) (*dto.RFPResponse, error) {
	if strings.TrimSpace(in.NaturalLanguageRequest) == "" {
		return nil, fmt.Errorf("%w: naturalLanguageRequest es requerido", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()

	extracted, err := uc.extraction.ExtractRFP(ctx, in.NaturalLanguageRequest)
	if err != nil {
		return nil, fmt.Errorf("extracción de RFP: %w", err)
	}

	items := make([]entity.RFPItem, 0, len(extracted.Items))
	for _, it := range extracted.Items {
		items = append(items, entity.RFPItem{Name: it.Name, Quantity: it.Quantity, Specs: it.Specs})
	}

	now := time.Now()
	rfp := &entity.RFP{
		ID:                     uuid.New().String(),
		Title:                  extracted.Title,
		NaturalLanguageRequest: in.NaturalLanguageRequest,
		Budget:                 extracted.Budget,
		DeliveryDate:           extracted.DeliveryDate,
		PaymentTerms:           extracted.PaymentTerms,
		Warranty:               extracted.Warranty,
		Items:                  items,
		Status:                 entity.StatusDraft,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.rfpRepo.Create(rfp); err != nil {
		return nil, err
	}
	return rfpToResponse(rfp, nil), nil
}

// Send despacha la RFP por correo a los proveedores indicados y aplica la
// transición Draft → Sent. Orden de efectos: primero el lote de correo,
// después la escritura; si el despacho falla la RFP queda en Draft.
// IDs de proveedor desconocidos se rechazan con error de validación
// (política documentada: nunca se recorta el fan-out en silencio).
func (uc *RFPUseCase) Send(ctx context.Context, rfpID string, in dto.SendRFPRequest) (*dto.RFPResponse, error) {
	ids := dedupe(in.VendorIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: vendorIds no puede estar vacío", domain.ErrValidation)
	}

	rfp, err := uc.rfpRepo.GetByID(rfpID)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, domain.ErrRFPNotFound
	}
	if !rfp.CanSend() {
		return nil, fmt.Errorf("%w: la RFP está en estado %s, solo Draft admite envío", domain.ErrConflict, rfp.Status)
	}

	vendors, err := uc.vendorRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(vendors) != len(ids) {
		return nil, fmt.Errorf("%w: vendorIds contiene ids desconocidos (%d de %d resueltos)",
			domain.ErrValidation, len(vendors), len(ids))
	}

	html, err := renderRFPEmail(rfp)
	if err != nil {
		return nil, fmt.Errorf("renderizar correo de RFP: %w", err)
	}
	replyTo := replyToFor(uc.inboundAddress, rfp.ID)
	messages := make([]ports.OutboundEmail, 0, len(vendors))
	for _, v := range vendors {
		messages = append(messages, ports.OutboundEmail{
			To:       v.Email,
			Subject:  "RFP: " + rfp.Title,
			HTMLBody: html,
			ReplyTo:  replyTo,
		})
	}

	// El despacho ocurre antes del commit del estado: fallo aquí = sigue Draft.
	if err := uc.mailer.SendBatch(ctx, messages); err != nil {
		return nil, fmt.Errorf("despachar RFP: %w", err)
	}

	// CAS sobre status dentro de una transacción: el perdedor de una carrera
	// de envíos concurrentes recibe ErrConflict en vez de pisar el estado.
	err = uc.tx.Run(ctx, func(rfpRepo repository.RFPRepository) error {
		return rfpRepo.MarkSent(rfp.ID, ids)
	})
	if err != nil {
		return nil, err
	}

	rfp.Status = entity.StatusSent
	rfp.VendorIDs = ids
	return rfpToResponse(rfp, vendors), nil
}

// GetByID obtiene una RFP con sus proveedores resueltos.
func (uc *RFPUseCase) GetByID(id string) (*dto.RFPResponse, error) {
	rfp, err := uc.rfpRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, domain.ErrRFPNotFound
	}
	vendors, err := uc.vendorRepo.ListByIDs(rfp.VendorIDs)
	if err != nil {
		return nil, err
	}
	return rfpToResponse(rfp, vendors), nil
}

// List lista todas las RFPs con proveedores resueltos.
func (uc *RFPUseCase) List() ([]*dto.RFPResponse, error) {
	list, err := uc.rfpRepo.List()
	if err != nil {
		return nil, err
	}

	// Una sola resolución de proveedores para todas las RFPs
	var allIDs []string
	for _, rfp := range list {
		allIDs = append(allIDs, rfp.VendorIDs...)
	}
	vendors, err := uc.vendorRepo.ListByIDs(dedupe(allIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}

	out := make([]*dto.RFPResponse, 0, len(list))
	for _, rfp := range list {
		resolved := make([]*entity.Vendor, 0, len(rfp.VendorIDs))
		for _, id := range rfp.VendorIDs {
			if v, ok := byID[id]; ok {
				resolved = append(resolved, v)
			}
		}
		out = append(out, rfpToResponse(rfp, resolved))
	}
	return out, nil
}

// ── Render del correo ─────────────────────────────────────────────────────────

// rfpEmailTmpl cuerpo HTML del correo de RFP: términos + tabla de ítems.
var rfpEmailTmpl = template.Must(template.New("rfpEmail").Parse(`<h1>Solicitud de Propuesta: {{.Title}}</h1>
<p>A continuación los detalles de la RFP:</p>
<ul>
  <li><strong>Presupuesto:</strong> {{.Budget}}</li>
  <li><strong>Fecha límite de entrega:</strong> {{.DeliveryDate}}</li>
  <li><strong>Términos de pago:</strong> {{.PaymentTerms}}</li>
  <li><strong>Garantía:</strong> {{.Warranty}}</li>
</ul>
<h2>Ítems:</h2>
<table border="1" cellpadding="5" cellspacing="0">
  <thead>
    <tr><th>Ítem</th><th>Cantidad</th><th>Especificaciones</th></tr>
  </thead>
  <tbody>
  {{- range .Items}}
    <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Specs}}</td></tr>
  {{- end}}
  </tbody>
</table>
<p>Para responder, por favor conteste este correo con su propuesta.</p>`))

type rfpEmailData struct {
	Title        string
	Budget       string
	DeliveryDate string
	PaymentTerms string
	Warranty     string
	Items        []entity.RFPItem
}

func renderRFPEmail(rfp *entity.RFP) (string, error) {
	data := rfpEmailData{
		Title:        rfp.Title,
		Budget:       rfp.Budget.StringFixed(2),
		DeliveryDate: "—",
		PaymentTerms: rfp.PaymentTerms,
		Warranty:     rfp.Warranty,
		Items:        rfp.Items,
	}
	if rfp.DeliveryDate != nil {
		data.DeliveryDate = rfp.DeliveryDate.Format("02/01/2006")
	}
	var sb strings.Builder
	if err := rfpEmailTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// replyToFor inserta el id de la RFP en el local-part de la dirección de
// ingesta por plus-addressing (proc@x.com + R1 → proc+R1@x.com).
// Devuelve vacío si no hay dirección de ingesta configurada.
func replyToFor(inboundAddress, rfpID string) string {
	at := strings.LastIndex(inboundAddress, "@")
	if at <= 0 {
		return ""
	}
	return inboundAddress[:at] + "+" + rfpID + inboundAddress[at:]
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func rfpToResponse(rfp *entity.RFP, vendors []*entity.Vendor) *dto.RFPResponse {
	items := make([]dto.RFPItemDTO, 0, len(rfp.Items))
	for _, it := range rfp.Items {
		items = append(items, dto.RFPItemDTO{Name: it.Name, Quantity: it.Quantity, Specs: it.Specs})
	}
	resolved := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resolved = append(resolved, *entityToVendorResponse(v))
	}
	return &dto.RFPResponse{
		ID:                     rfp.ID,
		Title:                  rfp.Title,
		NaturalLanguageRequest: rfp.NaturalLanguageRequest,
		Budget:                 rfp.Budget,
		DeliveryDate:           rfp.DeliveryDate,
		PaymentTerms:           rfp.PaymentTerms,
		Warranty:               rfp.Warranty,
		Items:                  items,
		Status:                 string(rfp.Status),
		Vendors:                resolved,
		CreatedAt:              rfp.CreatedAt,
		UpdatedAt:              rfp.UpdatedAt,
	}
}
