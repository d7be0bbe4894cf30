// Package ai implementa el adaptador de extracción estructurada sobre la API
// REST de Google Gemini: texto libre → JSON con esquema fijo, con contrato
// estricto de salida (un único objeto JSON, fences de markdown tolerados y
// eliminados, validación de campos obligatorios tras el parseo).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain"
)

// Verificar en tiempo de compilación que GeminiService implementa ExtractionService.
var _ ports.ExtractionService = (*GeminiService)(nil)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// rfpExtractionPrompt contrato de extracción para la creación de RFP (§ createFromText).
	rfpExtractionPrompt = `Eres un asistente de compras. Extrae los detalles clave de una solicitud de adquisición en lenguaje natural.
Devuelve ÚNICAMENTE un objeto JSON válido (sin texto adicional, sin bloques de markdown) con esta estructura exacta:
{
  "title": "<título corto de la solicitud>",
  "budget": <número: presupuesto total, 0 si no se menciona>,
  "deliveryDate": "<fecha límite de entrega en formato YYYY-MM-DD, cadena vacía si no se menciona>",
  "paymentTerms": "<términos de pago>",
  "warranty": "<garantía solicitada>",
  "items": [{"name": "<nombre>", "quantity": <número>, "specs": "<especificaciones>"}]
}
No incluyas texto fuera del JSON. Solo el objeto JSON.`

	// proposalExtractionPrompt contrato de extracción para la ingesta de propuestas.
	proposalExtractionPrompt = `Eres un asistente de compras. Extrae los detalles clave del correo de propuesta de un proveedor.
Devuelve ÚNICAMENTE un objeto JSON válido (sin texto adicional, sin bloques de markdown) con esta estructura exacta:
{
  "price": <número: precio total ofertado>,
  "deliveryDate": "<fecha de entrega en formato YYYY-MM-DD, cadena vacía si no se menciona>",
  "warranty": "<garantía ofrecida>"
}
No incluyas texto fuera del JSON. Solo el objeto JSON.`

	// recommendationPrompt contrato del análisis de propuestas.
	recommendationPrompt = `Eres el asistente de un gerente de compras experto. Tu tarea es analizar las propuestas de proveedores recibidas para una solicitud de propuesta (RFP) y entregar un resumen y una recomendación final.
Devuelve ÚNICAMENTE un objeto JSON válido (sin texto adicional, sin bloques de markdown) con dos claves:
{
  "summary": "<análisis profesional y breve: pros y contras de cada propuesta y el razonamiento de la recomendación>",
  "recommendedVendor": "<nombre del proveedor recomendado>"
}
No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// GeminiService adaptador que implementa ExtractionService llamando a la API
// REST de Google Gemini. Usa únicamente net/http; no requiere el SDK oficial.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Payloads que esperamos recibir del modelo ─────────────────────────────────
// Campos como punteros para distinguir "ausente" de "cero" en la validación.

type rfpPayload struct {
	Title        *string       `json:"title"`
	Budget       *float64      `json:"budget"`
	DeliveryDate *string       `json:"deliveryDate"`
	PaymentTerms *string       `json:"paymentTerms"`
	Warranty     *string       `json:"warranty"`
	Items        []itemPayload `json:"items"`
}

type itemPayload struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Specs    *string  `json:"specs"`
}

type proposalPayload struct {
	Price        *float64 `json:"price"`
	DeliveryDate *string  `json:"deliveryDate"`
	Warranty     *string  `json:"warranty"`
}

type recommendationPayload struct {
	Summary           *string `json:"summary"`
	RecommendedVendor *string `json:"recommendedVendor"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractRFP convierte la solicitud en lenguaje natural en los campos de una RFP.
func (s *GeminiService) ExtractRFP(ctx context.Context, naturalLanguageRequest string) (*dto.RFPExtractionDTO, error) {
	raw, err := s.generate(ctx, rfpExtractionPrompt, "La solicitud es: "+naturalLanguageRequest)
	if err != nil {
		return nil, err
	}

	var payload rfpPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v (JSON: %s)", domain.ErrExtractionFormat, err, raw)
	}
	// Validación de esquema: JSON válido pero sin los campos acordados también es error de formato.
	if payload.Title == nil || *payload.Title == "" {
		return nil, fmt.Errorf("%w: falta 'title'", domain.ErrExtractionFormat)
	}
	items := make([]dto.RFPItemDTO, 0, len(payload.Items))
	for i, it := range payload.Items {
		if it.Name == nil || *it.Name == "" || it.Quantity == nil {
			return nil, fmt.Errorf("%w: item %d sin 'name' o 'quantity'", domain.ErrExtractionFormat, i)
		}
		item := dto.RFPItemDTO{Name: *it.Name, Quantity: *it.Quantity}
		if it.Specs != nil {
			item.Specs = *it.Specs
		}
		items = append(items, item)
	}
	deliveryDate, err := parseDate(payload.DeliveryDate)
	if err != nil {
		return nil, err
	}

	out := &dto.RFPExtractionDTO{
		Title:        *payload.Title,
		DeliveryDate: deliveryDate,
		Items:        items,
	}
	if payload.Budget != nil {
		out.Budget = decimal.NewFromFloat(*payload.Budget)
	}
	if payload.PaymentTerms != nil {
		out.PaymentTerms = *payload.PaymentTerms
	}
	if payload.Warranty != nil {
		out.Warranty = *payload.Warranty
	}
	return out, nil
}

// ExtractProposal convierte el cuerpo del correo del proveedor en una propuesta estructurada.
func (s *GeminiService) ExtractProposal(ctx context.Context, emailBody string) (*dto.ProposalExtractionDTO, error) {
	raw, err := s.generate(ctx, proposalExtractionPrompt, "El correo es: "+emailBody)
	if err != nil {
		return nil, err
	}

	var payload proposalPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v (JSON: %s)", domain.ErrExtractionFormat, err, raw)
	}
	if payload.Price == nil {
		return nil, fmt.Errorf("%w: falta 'price'", domain.ErrExtractionFormat)
	}
	deliveryDate, err := parseDate(payload.DeliveryDate)
	if err != nil {
		return nil, err
	}

	out := &dto.ProposalExtractionDTO{
		Price:        decimal.NewFromFloat(*payload.Price),
		DeliveryDate: deliveryDate,
	}
	if payload.Warranty != nil {
		out.Warranty = *payload.Warranty
	}
	return out, nil
}

// RecommendVendor analiza la solicitud original y el bloque de propuestas.
func (s *GeminiService) RecommendVendor(ctx context.Context, rfpRequest, proposalsBlock string) (*dto.RecommendationDTO, error) {
	userText := fmt.Sprintf("**RFP original:**\n%q\n\n**Propuestas de proveedores recibidas:**\n%s", rfpRequest, proposalsBlock)
	raw, err := s.generate(ctx, recommendationPrompt, userText)
	if err != nil {
		return nil, err
	}

	var payload recommendationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v (JSON: %s)", domain.ErrExtractionFormat, err, raw)
	}
	if payload.Summary == nil || payload.RecommendedVendor == nil {
		return nil, fmt.Errorf("%w: faltan 'summary' o 'recommendedVendor'", domain.ErrExtractionFormat)
	}
	return &dto.RecommendationDTO{
		Summary:           *payload.Summary,
		RecommendedVendor: *payload.RecommendedVendor,
	}, nil
}

// generate llama al modelo y devuelve el objeto JSON de la respuesta, ya limpio.
// Errores de red/API → domain.ErrUpstream; salida no conforme → domain.ErrExtractionFormat.
func (s *GeminiService) generate(ctx context.Context, systemPrompt, userText string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY no configurado", domain.ErrUpstream)
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: userText}},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  2048,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("%w: Gemini error %d: %s", domain.ErrUpstream, errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("%w: Gemini HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("%w: deserializar respuesta Gemini: %v", domain.ErrUpstream, err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: Gemini devolvió respuesta vacía", domain.ErrUpstream)
	}

	rawText := gemResp.Candidates[0].Content.Parts[0].Text
	clean := stripFences(rawText)
	// Contrato estricto: un único objeto JSON; prosa envolvente se rechaza,
	// no se rescata con regex.
	if !strings.HasPrefix(clean, "{") || !strings.HasSuffix(clean, "}") {
		return nil, fmt.Errorf("%w: la respuesta no es un objeto JSON (respuesta: %s)", domain.ErrExtractionFormat, rawText)
	}
	return []byte(clean), nil
}

// stripFences elimina bloques de código markdown (```json … ``` o ``` … ```)
// alrededor de la respuesta. Solo eso: cualquier otro envoltorio es rechazado
// por el caller.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		// Quitar la línea de apertura (```json o ```)
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}
	return text
}

// parseDate interpreta la fecha YYYY-MM-DD del modelo. Vacía o ausente → nil;
// presente pero no parseable → error de formato (el contrato pide YYYY-MM-DD).
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q no cumple YYYY-MM-DD", domain.ErrExtractionFormat, *s)
	}
	return &t, nil
}
