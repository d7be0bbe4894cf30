package ai

// Tests del adaptador Gemini contra un servidor HTTP falso: se fija baseURL al
// httptest.Server y se controla el texto que "devuelve el modelo" en cada caso.
// Lo que se verifica es el contrato estricto de salida: un único objeto JSON,
// fences tolerados, prosa rechazada, campos obligatorios validados.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/domain"
)

// newTestService levanta un servidor falso que siempre responde con modelText
// como salida del modelo, y un GeminiService apuntando a él.
func newTestService(t *testing.T, modelText string) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": modelText}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return &GeminiService{
		apiKey:     "test-key",
		model:      "gemini-2.5-flash",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// newFailingService levanta un servidor que responde siempre el status dado.
func newFailingService(t *testing.T, status int, body string) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	return &GeminiService{
		apiKey:     "test-key",
		model:      "gemini-2.5-flash",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtractRFP
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractRFP_JSONLimpio(t *testing.T) {
	svc := newTestService(t, `{
		"title": "Compra de laptops",
		"budget": 50000,
		"deliveryDate": "2025-03-15",
		"paymentTerms": "30 días",
		"warranty": "2 años",
		"items": [{"name": "Laptop", "quantity": 20, "specs": "16GB RAM"}]
	}`)

	out, err := svc.ExtractRFP(context.Background(), "necesito 20 laptops")
	require.NoError(t, err)
	assert.Equal(t, "Compra de laptops", out.Title)
	assert.True(t, out.Budget.Equal(decimal.NewFromInt(50000)), "budget debe ser 50000, fue %s", out.Budget)
	require.NotNil(t, out.DeliveryDate)
	assert.Equal(t, "2025-03-15", out.DeliveryDate.Format("2006-01-02"))
	assert.Equal(t, "30 días", out.PaymentTerms)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Laptop", out.Items[0].Name)
	assert.Equal(t, float64(20), out.Items[0].Quantity)
}

func TestExtractRFP_ConFencesDeMarkdown(t *testing.T) {
	// Los fences se toleran y se eliminan; el resto del contrato aplica igual.
	svc := newTestService(t, "```json\n{\"title\": \"Compra de sillas\", \"budget\": 0, \"deliveryDate\": \"\", \"paymentTerms\": \"\", \"warranty\": \"\", \"items\": []}\n```")

	out, err := svc.ExtractRFP(context.Background(), "sillas de oficina")
	require.NoError(t, err)
	assert.Equal(t, "Compra de sillas", out.Title)
	assert.Nil(t, out.DeliveryDate, "deliveryDate vacío debe quedar nil")
	assert.True(t, out.Budget.IsZero())
}

func TestExtractRFP_ProsaEnvolvente(t *testing.T) {
	// Prosa alrededor del objeto no se rescata: es error de formato.
	svc := newTestService(t, `Claro, aquí tienes el JSON: {"title": "x", "items": []} espero que sirva.`)

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

func TestExtractRFP_SinTitle(t *testing.T) {
	svc := newTestService(t, `{"budget": 100, "items": []}`)

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

func TestExtractRFP_FechaInvalida(t *testing.T) {
	svc := newTestService(t, `{"title": "x", "deliveryDate": "15/03/2025", "items": []}`)

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

func TestExtractRFP_ItemSinQuantity(t *testing.T) {
	svc := newTestService(t, `{"title": "x", "items": [{"name": "Laptop"}]}`)

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtractProposal
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractProposal_OK(t *testing.T) {
	svc := newTestService(t, `{"price": 45000.50, "deliveryDate": "2025-01-01", "warranty": "1 año"}`)

	out, err := svc.ExtractProposal(context.Background(), "ofrecemos todo por 45000.50")
	require.NoError(t, err)
	assert.Equal(t, "45000.5", out.Price.String())
	require.NotNil(t, out.DeliveryDate)
	assert.Equal(t, "2025-01-01", out.DeliveryDate.Format("2006-01-02"))
	assert.Equal(t, "1 año", out.Warranty)
}

func TestExtractProposal_SinPrice(t *testing.T) {
	// JSON sintácticamente válido pero sin 'price': error de formato, no de red.
	svc := newTestService(t, `{"deliveryDate": "", "warranty": "6 meses"}`)

	_, err := svc.ExtractProposal(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecommendVendor
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendVendor_OK(t *testing.T) {
	svc := newTestService(t, `{"summary": "Acme ofrece el mejor precio.", "recommendedVendor": "Acme Corp"}`)

	out, err := svc.RecommendVendor(context.Background(), "20 laptops", "Propuesta 1:\n- Proveedor: Acme Corp\n")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", out.RecommendedVendor)
	assert.Equal(t, "Acme ofrece el mejor precio.", out.Summary)
}

func TestRecommendVendor_SinCampos(t *testing.T) {
	svc := newTestService(t, `{"summary": "solo resumen"}`)

	_, err := svc.RecommendVendor(context.Background(), "req", "props")
	assert.ErrorIs(t, err, domain.ErrExtractionFormat)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del colaborador
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_ErrorHTTPDeGemini(t *testing.T) {
	svc := newFailingService(t, http.StatusTooManyRequests,
		`{"error": {"code": 429, "message": "Resource has been exhausted"}}`)

	_, err := svc.ExtractProposal(context.Background(), "algo")
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_SinAPIKey(t *testing.T) {
	svc := NewGeminiService("", "gemini-2.5-flash")

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGenerate_RespuestaVacia(t *testing.T) {
	svc := newFailingService(t, http.StatusOK, `{"candidates": []}`)

	_, err := svc.ExtractRFP(context.Background(), "algo")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// ──────────────────────────────────────────────────────────────────────────────
// stripFences
// ──────────────────────────────────────────────────────────────────────────────

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"sin fences", `{"a": 1}`, `{"a": 1}`},
		{"fence con etiqueta json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence sin etiqueta", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"espacios alrededor", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}
